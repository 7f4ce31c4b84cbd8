package infra

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_TEXT_MODEL", "")
	t.Setenv("GEMINI_IMAGE_MODEL", "")
	t.Setenv("GEMINI_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.GeminiTextModel != "gemini-2.5-flash" {
		t.Fatalf("GeminiTextModel = %q", cfg.GeminiTextModel)
	}
	if cfg.GeminiImageModel != "gemini-3-pro-image-preview" {
		t.Fatalf("GeminiImageModel = %q", cfg.GeminiImageModel)
	}
	if cfg.GeminiBaseURL != "https://generativelanguage.googleapis.com/v1beta" {
		t.Fatalf("GeminiBaseURL = %q", cfg.GeminiBaseURL)
	}
	if cfg.PresetPersonURL == "" {
		t.Fatal("PresetPersonURL should have a default")
	}
}

func TestLoadConfigHonorsExplicitValues(t *testing.T) {
	t.Setenv("PORT", "1919")
	t.Setenv("GEMINI_BASE_URL", "http://localhost:9090/v1beta")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "300")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "1919" {
		t.Fatalf("Port = %q, want 1919", cfg.Port)
	}
	if cfg.GeminiBaseURL != "http://localhost:9090/v1beta" {
		t.Fatalf("GeminiBaseURL = %q", cfg.GeminiBaseURL)
	}
	if cfg.HTTPWriteTimeout.Seconds() != 300 {
		t.Fatalf("HTTPWriteTimeout = %v, want 300s", cfg.HTTPWriteTimeout)
	}
}
