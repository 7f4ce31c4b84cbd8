package imagegen

import (
	"context"
	"encoding/base64"
	"strings"

	"google.golang.org/genai"

	"coverstudio/internal/domain"
)

// SDKRenderer runs the image stage through the official genai SDK.
type SDKRenderer struct {
	model string
}

func NewSDKRenderer(model string) *SDKRenderer {
	if strings.TrimSpace(model) == "" {
		model = "gemini-3-pro-image-preview"
	}
	return &SDKRenderer{model: model}
}

func (s *SDKRenderer) Render(ctx context.Context, req Request, apiKey string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &domain.ProviderError{Stage: "image", Err: err}
	}

	parts := []*genai.Part{{Text: composePrompt(req)}}
	for _, ref := range []*domain.ReferenceImage{req.Person, req.Logo} {
		if ref == nil {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(ref.Data)
		if err != nil {
			return "", &domain.ReadError{Err: err}
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			MIMEType: ref.MimeType,
			Data:     raw,
		}})
	}

	config := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: AspectRatio},
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return "", &domain.ProviderError{Stage: "image", Err: err}
	}
	if len(resp.Candidates) == 0 {
		return "", domain.ErrSafetyBlocked
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
			}
		}
	}
	return "", domain.ErrNoImageData
}

var _ Renderer = (*SDKRenderer)(nil)
