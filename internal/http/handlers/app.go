package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"coverstudio/internal/pipeline"
)

// App bundles the dependencies every handler needs.
type App struct {
	Sessions   *pipeline.Store
	Controller *pipeline.Controller
	Password   string
	Logger     zerolog.Logger
}

func NewApp(sessions *pipeline.Store, controller *pipeline.Controller, password string, logger zerolog.Logger) *App {
	return &App{
		Sessions:   sessions,
		Controller: controller,
		Password:   password,
		Logger:     logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

// session resolves the {id} route parameter, writing a 404 when the session
// is unknown.
func (a *App) session(w http.ResponseWriter, r *http.Request) (*pipeline.Session, bool) {
	id := chi.URLParam(r, "id")
	s, ok := a.Sessions.Get(id)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "session not found")
		return nil, false
	}
	return s, true
}
