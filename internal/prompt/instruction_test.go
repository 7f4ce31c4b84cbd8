package prompt

import (
	"strings"
	"testing"

	"coverstudio/internal/domain"
)

func TestSystemInstructionDeclaresAllSchemaKeys(t *testing.T) {
	for _, key := range SchemaKeys {
		if !strings.Contains(SystemInstruction, `"`+key+`"`) {
			t.Fatalf("system instruction does not mention key %q", key)
		}
	}
}

func TestBuildUserPromptEmbedsEveryField(t *testing.T) {
	form := domain.CoverFormData{
		MainTitle:           "如何10秒做封面",
		SubTitle:            "副标题",
		PromiseLevel:        "3",
		CoverType:           "1",
		PersonSource:        "1",
		PersonPosition:      "2",
		ExpressionStrength:  "2",
		ColorStyle:          "3",
		BackgroundElement:   "4",
		BrandName:           "CoverStudio",
		LogoType:            "2",
		BrandIntensity:      "1",
		TextLayout:          "2",
		SpecialRequirements: "戴眼镜",
	}
	got := BuildUserPrompt(form)

	wantFragments := []string{
		"- Main Title: 如何10秒做封面",
		"- Sub Title: 副标题",
		"- Promise Level: 3",
		"- Cover Type: 1",
		"- Person Source: 1 (Note: If '1', user has uploaded a photo. If '3', user uses a specific preset photo.)",
		"- Person Position: 2",
		"- Expression: 2",
		"- Color Style: 3",
		"- Background: 4",
		"- Brand Name: CoverStudio",
		"- Logo Type: 2",
		"- Brand Intensity: 1",
		"- Text Layout: 2",
		"- Special Req: 戴眼镜",
		"strict JSON format",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(got, fragment) {
			t.Fatalf("prompt missing %q\nfull prompt:\n%s", fragment, got)
		}
	}
}

func TestBuildUserPromptIsStable(t *testing.T) {
	form := domain.DefaultForm()
	if BuildUserPrompt(form) != BuildUserPrompt(form) {
		t.Fatal("prompt must be deterministic for identical form data")
	}
}
