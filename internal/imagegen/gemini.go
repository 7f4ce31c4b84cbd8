package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coverstudio/internal/domain"
)

const geminiDefaultTimeout = 180 * time.Second

// GeminiOptions controls how the REST renderer is configured.
type GeminiOptions struct {
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiRenderer calls the Gemini generateContent REST endpoint with a
// multi-part message: the prompt text first, then up to two inline reference
// images. Output is fixed at 16:9 / 1K.
type GeminiRenderer struct {
	model   string
	baseURL string
	client  *http.Client
}

type geminiImageRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiGenConfig struct {
	ImageConfig *geminiImageConfig `json:"imageConfig,omitempty"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

type geminiImageResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason,omitempty"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

func NewGeminiRenderer(opts GeminiOptions) *GeminiRenderer {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-3-pro-image-preview"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	return &GeminiRenderer{
		model:   model,
		baseURL: baseURL,
		client:  client,
	}
}

// Render issues one image-generation request and extracts the first inline
// image payload from the response.
func (g *GeminiRenderer) Render(ctx context.Context, req Request, apiKey string) (string, error) {
	parts := []geminiPart{{Text: composePrompt(req)}}
	if req.Person != nil {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: req.Person.MimeType,
			Data:     req.Person.Data,
		}})
	}
	if req.Logo != nil {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: req.Logo.MimeType,
			Data:     req.Logo.Data,
		}})
	}

	payload := geminiImageRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenConfig{
			ImageConfig: &geminiImageConfig{
				AspectRatio: AspectRatio,
				ImageSize:   ImageSize,
			},
		},
	}

	var out geminiImageResponse
	if err := g.invoke(ctx, payload, apiKey, &out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 {
		return "", domain.ErrSafetyBlocked
	}
	for _, cand := range out.Candidates {
		if len(cand.Content.Parts) == 0 {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			if _, err := base64.StdEncoding.DecodeString(part.InlineData.Data); err != nil {
				return "", &domain.ProviderError{Stage: "image", Err: err}
			}
			return part.InlineData.Data, nil
		}
	}
	return "", domain.ErrNoImageData
}

func (g *GeminiRenderer) invoke(ctx context.Context, payload geminiImageRequest, apiKey string, out *geminiImageResponse) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &domain.ProviderError{Stage: "image", Err: err}
	}
	endpoint := g.baseURL + "/models/" + url.PathEscape(g.model) + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &domain.ProviderError{Stage: "image", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return &domain.ProviderError{Stage: "image", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return &domain.ProviderError{
			Stage:      "image",
			StatusCode: resp.StatusCode,
			Message:    readProviderError(resp.Body),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.ProviderError{Stage: "image", Err: err}
	}
	return nil
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

var _ Renderer = (*GeminiRenderer)(nil)
