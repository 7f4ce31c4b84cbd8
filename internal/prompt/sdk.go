package prompt

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"coverstudio/internal/domain"
)

// SDKStrategist runs the strategy stage through the official genai SDK.
// Preferred transport where the SDK is available; behavior matches the REST
// strategist because both consume the same instruction and schema constants.
type SDKStrategist struct {
	model string
}

func NewSDKStrategist(model string) *SDKStrategist {
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}
	return &SDKStrategist{model: model}
}

func (s *SDKStrategist) Optimize(ctx context.Context, form domain.CoverFormData, apiKey string) (*domain.OptimizationResult, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &domain.ProviderError{Stage: "strategy", Err: err}
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: SystemInstruction}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   sdkStrategySchema(),
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(BuildUserPrompt(form)), config)
	if err != nil {
		return nil, &domain.ProviderError{Stage: "strategy", Err: err}
	}
	if len(resp.Candidates) == 0 {
		return nil, domain.ErrSafetyBlocked
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyResponse
	}
	return ParseOptimization(text)
}

func sdkStrategySchema() *genai.Schema {
	props := make(map[string]*genai.Schema, len(SchemaKeys))
	for _, key := range SchemaKeys {
		props[key] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   SchemaKeys,
	}
}

var _ Strategist = (*SDKStrategist)(nil)
