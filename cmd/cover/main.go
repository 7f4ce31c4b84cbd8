package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"coverstudio/internal/assets"
	"coverstudio/internal/credential"
	"coverstudio/internal/domain"
	"coverstudio/internal/imagegen"
	"coverstudio/internal/infra"
	"coverstudio/internal/pipeline"
	"coverstudio/internal/prompt"
)

// cover generates a single thumbnail from the command line using the same
// two-stage pipeline as the API, with the automation-safe defaults.
func main() {
	_ = godotenv.Load()

	title := flag.String("title", "", "main title (required)")
	subtitle := flag.String("subtitle", "", "subtitle, defaults to the stock tagline")
	name := flag.String("name", "cover.png", "output filename")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if strings.TrimSpace(*title) == "" {
		logger.Fatal().Msg("-title is required")
	}
	if cfg.GeminiAPIKey == "" {
		logger.Fatal().Msg("GEMINI_API_KEY is not set")
	}

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
	controller := pipeline.NewController(
		strategist,
		renderer,
		credential.NewResolver(cfg.GeminiAPIKey),
		assets.NewPresetFetcher(cfg.PresetPersonURL, nil),
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	form := domain.ProxyDefaultForm(*title, *subtitle)
	result, imageURI, err := controller.Generate(ctx, form)
	if err != nil {
		logger.Fatal().Err(err).Msg("generation failed")
	}

	payload := imageURI
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	imageBytes, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		logger.Fatal().Err(err).Msg("decoding generated image")
	}

	// The cover is already generated at this point; a failed save must not
	// discard the strategy output.
	if gallery, err := assets.NewGallery(cfg.OutputDir); err != nil {
		logger.Error().Err(err).Msg("preparing output directory")
	} else if path, err := gallery.SaveCover(ctx, *name, imageBytes); err != nil {
		logger.Error().Err(err).Msg("saving cover")
	} else {
		logger.Info().Str("path", path).Msg("cover saved")
	}

	_ = json.NewEncoder(os.Stdout).Encode(result)
}
