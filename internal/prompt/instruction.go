package prompt

import (
	"fmt"
	"strings"

	"coverstudio/internal/domain"
)

// SystemInstruction is the fixed role instruction for the strategy stage.
// Every call site that invokes the strategy model (session pipeline, public
// generate endpoint, CLI) must consume this one constant so behavior stays
// byte-identical across transports. Treat edits as a version bump.
const SystemInstruction = `
You are a "Cover Image Meta Prompt Abstract Assistant". Your goal is to take user inputs and structured data to generate a professional, high-click-through rate image generation prompt.

You act as:
1. Senior Visual Designer (16:9 expert, YouTube/WeChat aesthetic)
2. Clickbait Expert (High CTR)
3. Prompt Engineer

Your Output MUST be a JSON object with the following keys:
- "parameterSummary": A concise summary of the interpreted parameters in Chinese.
- "finalPrompt": The highly detailed, English image generation prompt optimized for a model like Gemini or Midjourney.
- "chinesePrompt": A direct translation of the "finalPrompt" into Chinese, capturing the same descriptive details and style keywords.
- "analysis": A brief explanation of why you chose this composition.

Follow these design principles:
- Text legibility is priority #1.
- Authentic human feel (if person involved).
- High visual impact.
- 16:9 Aspect Ratio.

For the "finalPrompt", ensure you describe the text placement, lighting, camera angle, and style vividly. If the user provides a title, ensure the prompt asks for the text to be legible and high contrast.
`

// SchemaKeys are the four mandatory string keys of the strategy response.
var SchemaKeys = []string{"parameterSummary", "finalPrompt", "chinesePrompt", "analysis"}

// BuildUserPrompt turns the questionnaire answers into the user message sent
// to the strategy model. Pure data transformation: malformed values are the
// concern of form validation upstream and parse validation downstream.
func BuildUserPrompt(form domain.CoverFormData) string {
	sb := &strings.Builder{}
	sb.WriteString("Analyze the following cover request and generate the optimized prompt:\n\n")
	fmt.Fprintf(sb, "- Main Title: %s\n", form.MainTitle)
	fmt.Fprintf(sb, "- Sub Title: %s\n", form.SubTitle)
	fmt.Fprintf(sb, "- Promise Level: %s\n", form.PromiseLevel)
	fmt.Fprintf(sb, "- Cover Type: %s\n", form.CoverType)
	fmt.Fprintf(sb, "- Person Source: %s (Note: If '1', user has uploaded a photo. If '3', user uses a specific preset photo.)\n", form.PersonSource)
	fmt.Fprintf(sb, "- Person Position: %s\n", form.PersonPosition)
	fmt.Fprintf(sb, "- Expression: %s\n", form.ExpressionStrength)
	fmt.Fprintf(sb, "- Color Style: %s\n", form.ColorStyle)
	fmt.Fprintf(sb, "- Background: %s\n", form.BackgroundElement)
	fmt.Fprintf(sb, "- Brand Name: %s\n", form.BrandName)
	fmt.Fprintf(sb, "- Logo Type: %s\n", form.LogoType)
	fmt.Fprintf(sb, "- Brand Intensity: %s\n", form.BrandIntensity)
	fmt.Fprintf(sb, "- Text Layout: %s\n", form.TextLayout)
	fmt.Fprintf(sb, "- Special Req: %s\n", form.SpecialRequirements)
	sb.WriteString("\nPlease provide the output in strict JSON format matching the schema.")
	return sb.String()
}
