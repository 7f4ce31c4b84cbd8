package imagegen

import (
	"context"

	"coverstudio/internal/domain"
)

// Fixed output configuration for every generated cover.
const (
	AspectRatio = "16:9"
	ImageSize   = "1K"
)

// Instruction suffixes appended to the prompt when reference images are
// attached. Shared by every transport so the model sees identical wording.
const (
	personLikenessNote = "\n\n(Important: Use the provided first image as the reference for the person in the composition. Maintain their likeness.)"
	logoInclusionNote  = "\n\n(Important: Include the provided brand logo image in the composition as requested.)"
)

// Request carries the finalized prompt and up to two reference images into
// the image stage.
type Request struct {
	Prompt string
	Person *domain.ReferenceImage
	Logo   *domain.ReferenceImage
}

// Renderer invokes the remote image model and returns the generated PNG as
// base64-encoded bytes. Implementations differ only in transport.
type Renderer interface {
	Render(ctx context.Context, req Request, apiKey string) (string, error)
}

// DataURI wraps base64 PNG payload for direct display in a browser.
func DataURI(base64PNG string) string {
	return "data:image/png;base64," + base64PNG
}

// composePrompt appends the reference-image instructions to the text part.
func composePrompt(req Request) string {
	prompt := req.Prompt
	if req.Person != nil {
		prompt += personLikenessNote
	}
	if req.Logo != nil {
		prompt += logoInclusionNote
	}
	return prompt
}
