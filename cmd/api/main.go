package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"coverstudio/internal/assets"
	"coverstudio/internal/credential"
	"coverstudio/internal/http/handlers"
	"coverstudio/internal/http/httpapi"
	"coverstudio/internal/imagegen"
	"coverstudio/internal/infra"
	"coverstudio/internal/pipeline"
	"coverstudio/internal/prompt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	var strategist prompt.Strategist
	var renderer imagegen.Renderer
	if cfg.GeminiTransport == "sdk" {
		strategist = prompt.NewSDKStrategist(cfg.GeminiTextModel)
		renderer = imagegen.NewSDKRenderer(cfg.GeminiImageModel)
	} else {
		strategist = prompt.NewGeminiStrategist(prompt.GeminiOptions{
			Model:   cfg.GeminiTextModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		renderer = imagegen.NewGeminiRenderer(imagegen.GeminiOptions{
			Model:   cfg.GeminiImageModel,
			BaseURL: cfg.GeminiBaseURL,
		})
	}
	resolver := credential.NewResolver(cfg.GeminiAPIKey)
	preset := assets.NewPresetFetcher(cfg.PresetPersonURL, nil)

	controller := pipeline.NewController(strategist, renderer, resolver, preset, logger)
	sessions := pipeline.NewStore()

	app := handlers.NewApp(sessions, controller, cfg.AccessPassword, logger)
	router := httpapi.NewRouter(app, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
