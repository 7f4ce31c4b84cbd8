package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"coverstudio/internal/http/handlers"
	"coverstudio/internal/middleware"
)

// publicRateLimit caps anonymous generate calls per IP. Each call costs two
// model invocations, so the window is deliberately tight.
const publicRateLimit = 10

func NewRouter(app *handlers.App, logger zerolog.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Locale("zh"))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", app.SessionCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.SessionGet)
			r.Delete("/", app.SessionDelete)
			r.Post("/reset", app.SessionReset)
			r.Put("/form", app.FormUpdate)
			r.Post("/login", app.Login)
			r.Post("/logout", app.Logout)
			r.Put("/key", app.SetKey)
			r.Post("/images/{slot}", app.UploadImage)
			r.Delete("/images/{slot}", app.RemoveImage)
			r.Post("/strategy", app.StrategyRun)
			r.Post("/image", app.ImageRun)
			r.Get("/download", app.Download)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS([]string{"*"}))
		r.Use(middleware.RateLimit(publicRateLimit, time.Minute))
		r.Post("/generate", app.Generate)
	})

	return r
}
