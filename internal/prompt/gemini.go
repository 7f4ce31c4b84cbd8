package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coverstudio/internal/domain"
)

const geminiDefaultTimeout = 60 * time.Second

// GeminiOptions controls how the REST strategist is configured. The API key
// is deliberately absent: credentials are resolved per request, not per
// client, so one client serves every session.
type GeminiOptions struct {
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiStrategist calls the Gemini generateContent REST endpoint directly.
// This is the transport for constrained runtimes where the official SDK is
// not available.
type GeminiStrategist struct {
	model   string
	baseURL string
	client  *http.Client
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string        `json:"responseMimeType,omitempty"`
	ResponseSchema   *geminiSchema `json:"responseSchema,omitempty"`
}

type geminiSchema struct {
	Type       string                   `json:"type"`
	Properties map[string]*geminiSchema `json:"properties,omitempty"`
	Required   []string                 `json:"required,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
		Status  string `json:"status,omitempty"`
	} `json:"error"`
}

func NewGeminiStrategist(opts GeminiOptions) *GeminiStrategist {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	return &GeminiStrategist{
		model:   model,
		baseURL: baseURL,
		client:  client,
	}
}

// Optimize issues one strategy request constrained to the four-key schema
// and validates the parsed result. No retries: failures surface immediately.
func (g *GeminiStrategist) Optimize(ctx context.Context, form domain.CoverFormData, apiKey string) (*domain.OptimizationResult, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: BuildUserPrompt(form)}},
		}},
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: SystemInstruction}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   strategySchema(),
		},
	}

	var out geminiResponse
	if err := g.invoke(ctx, payload, apiKey, &out); err != nil {
		return nil, err
	}

	if len(out.Candidates) == 0 {
		return nil, domain.ErrSafetyBlocked
	}
	text := firstText(out)
	if text == "" {
		return nil, domain.ErrEmptyResponse
	}
	return ParseOptimization(text)
}

func (g *GeminiStrategist) invoke(ctx context.Context, payload geminiRequest, apiKey string, out *geminiResponse) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &domain.ProviderError{Stage: "strategy", Err: err}
	}
	endpoint := g.baseURL + "/models/" + url.PathEscape(g.model) + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &domain.ProviderError{Stage: "strategy", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return &domain.ProviderError{Stage: "strategy", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return &domain.ProviderError{
			Stage:      "strategy",
			StatusCode: resp.StatusCode,
			Message:    readProviderError(resp.Body),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.ProviderError{Stage: "strategy", Err: err}
	}
	return nil
}

func strategySchema() *geminiSchema {
	props := make(map[string]*geminiSchema, len(SchemaKeys))
	for _, key := range SchemaKeys {
		props[key] = &geminiSchema{Type: "STRING"}
	}
	return &geminiSchema{
		Type:       "OBJECT",
		Properties: props,
		Required:   SchemaKeys,
	}
}

func firstText(resp geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

func readProviderError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil {
		return ""
	}
	var apiErr geminiErrorResponse
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return strings.TrimSpace(string(data))
}

var _ Strategist = (*GeminiStrategist)(nil)
