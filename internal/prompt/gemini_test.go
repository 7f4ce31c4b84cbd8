package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"coverstudio/internal/domain"
)

func strategyServer(t *testing.T, handler http.HandlerFunc) *GeminiStrategist {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiStrategist(GeminiOptions{BaseURL: srv.URL, HTTPClient: srv.Client()})
}

func candidateBody(text string) string {
	body := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]any{{"text": text}},
			},
		}},
	}
	raw, _ := json.Marshal(body)
	return string(raw)
}

func TestOptimizeParsesSchemaResponse(t *testing.T) {
	var gotKey string
	var gotReq geminiRequest
	strategist := strategyServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidateBody(`{"parameterSummary":"摘要","finalPrompt":"A vibrant YouTube thumbnail...","chinesePrompt":"中文提示","analysis":"说明"}`)))
	})

	result, err := strategist.Optimize(context.Background(), domain.DefaultForm(), "user-key")
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if result.FinalPrompt != "A vibrant YouTube thumbnail..." {
		t.Fatalf("FinalPrompt = %q", result.FinalPrompt)
	}
	if gotKey != "user-key" {
		t.Fatalf("x-goog-api-key = %q, want user-key", gotKey)
	}
	if gotReq.SystemInstruction == nil || gotReq.SystemInstruction.Parts[0].Text != SystemInstruction {
		t.Fatal("request must carry the shared system instruction verbatim")
	}
	cfg := gotReq.GenerationConfig
	if cfg == nil || cfg.ResponseMimeType != "application/json" {
		t.Fatalf("generationConfig = %+v, want JSON response mime type", cfg)
	}
	if cfg.ResponseSchema == nil || len(cfg.ResponseSchema.Required) != 4 {
		t.Fatalf("responseSchema = %+v, want four required keys", cfg.ResponseSchema)
	}
}

func TestOptimizeStripsCodeFences(t *testing.T) {
	strategist := strategyServer(t, func(w http.ResponseWriter, r *http.Request) {
		fenced := "```json\n{\"parameterSummary\":\"s\",\"finalPrompt\":\"p\",\"chinesePrompt\":\"c\",\"analysis\":\"a\"}\n```"
		_, _ = w.Write([]byte(candidateBody(fenced)))
	})
	result, err := strategist.Optimize(context.Background(), domain.DefaultForm(), "k")
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if result.FinalPrompt != "p" {
		t.Fatalf("FinalPrompt = %q, want p", result.FinalPrompt)
	}
}

func TestOptimizeIsDeterministicInShape(t *testing.T) {
	strategist := strategyServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateBody(`{"parameterSummary":"s","finalPrompt":"p","chinesePrompt":"c","analysis":"a"}`)))
	})
	form := domain.DefaultForm()
	first, err := strategist.Optimize(context.Background(), form, "k")
	if err != nil {
		t.Fatalf("first Optimize: %v", err)
	}
	second, err := strategist.Optimize(context.Background(), form, "k")
	if err != nil {
		t.Fatalf("second Optimize: %v", err)
	}
	if *first != *second {
		t.Fatalf("results differ: %+v vs %+v", first, second)
	}
}

func TestOptimizeProviderError(t *testing.T) {
	strategist := strategyServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	})
	_, err := strategist.Optimize(context.Background(), domain.DefaultForm(), "k")
	var perr *domain.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("Optimize returned %v, want ProviderError", err)
	}
	if perr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("StatusCode = %d, want 429", perr.StatusCode)
	}
	if perr.Message != "Resource has been exhausted" {
		t.Fatalf("Message = %q", perr.Message)
	}
}

func TestOptimizeSafetyBlocked(t *testing.T) {
	strategist := strategyServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
	})
	_, err := strategist.Optimize(context.Background(), domain.DefaultForm(), "k")
	if !errors.Is(err, domain.ErrSafetyBlocked) {
		t.Fatalf("Optimize returned %v, want ErrSafetyBlocked", err)
	}
}

func TestOptimizeEmptyCandidateText(t *testing.T) {
	strategist := strategyServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateBody("   ")))
	})
	_, err := strategist.Optimize(context.Background(), domain.DefaultForm(), "k")
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("Optimize returned %v, want ErrEmptyResponse", err)
	}
}

func TestOptimizeMissingFinalPrompt(t *testing.T) {
	strategist := strategyServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateBody(`{"parameterSummary":"s","finalPrompt":"","chinesePrompt":"c","analysis":"a"}`)))
	})
	_, err := strategist.Optimize(context.Background(), domain.DefaultForm(), "k")
	var perr *domain.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Optimize returned %v, want ParseError", err)
	}
}
