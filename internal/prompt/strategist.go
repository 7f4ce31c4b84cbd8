package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"coverstudio/internal/domain"
)

var errMissingFinalPrompt = errors.New("missing required key finalPrompt")

// Strategist runs the strategy stage: one call to the remote text model that
// turns questionnaire answers into an image-generation prompt plus rationale.
// Implementations differ only in transport (raw REST vs official SDK).
type Strategist interface {
	Optimize(ctx context.Context, form domain.CoverFormData, apiKey string) (*domain.OptimizationResult, error)
}

// ParseOptimization decodes model output into an OptimizationResult. Markdown
// code fences are stripped first: some transports return fenced JSON even
// when the response schema is constrained. A missing finalPrompt is a hard
// failure, never a soft default.
func ParseOptimization(raw string) (*domain.OptimizationResult, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, domain.ErrEmptyResponse
	}
	var result domain.OptimizationResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &domain.ParseError{Raw: raw, Err: err}
	}
	if !result.Complete() {
		return nil, &domain.ParseError{Raw: raw, Err: errMissingFinalPrompt}
	}
	return &result, nil
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
