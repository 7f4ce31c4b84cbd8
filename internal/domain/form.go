package domain

import "strings"

// Option values for the closed-choice questionnaire fields. The string codes
// match what the form UI submits.
const (
	PersonSourceUpload = "1"
	PersonSourceAI     = "2"
	PersonSourcePreset = "3"

	LogoTypeText  = "1"
	LogoTypeImage = "2"
)

// CoverFormData is the questionnaire answer set for one cover request.
// It is created with defaults at session start, mutated field-by-field by
// user input, and read (never mutated) by the pipeline.
type CoverFormData struct {
	MainTitle           string `json:"mainTitle"`
	SubTitle            string `json:"subTitle"`
	PromiseLevel        string `json:"promiseLevel"`
	CoverType           string `json:"coverType"`
	PersonSource        string `json:"personSource"`
	PersonPosition      string `json:"personPosition"`
	ExpressionStrength  string `json:"expressionStrength"`
	ColorStyle          string `json:"colorStyle"`
	BackgroundElement   string `json:"backgroundElement"`
	BrandName           string `json:"brandName"`
	LogoType            string `json:"logoType"`
	BrandIntensity      string `json:"brandIntensity"`
	TextLayout          string `json:"textLayout"`
	SpecialRequirements string `json:"specialRequirements"`
}

// formOptions declares the closed option set for every enumerated field.
var formOptions = map[string][]string{
	"promiseLevel":       {"1", "2", "3"},
	"coverType":          {"1", "2", "3"},
	"personSource":       {"1", "2", "3"},
	"personPosition":     {"1", "2", "3"},
	"expressionStrength": {"1", "2", "3"},
	"colorStyle":         {"1", "2", "3"},
	"backgroundElement":  {"1", "2", "3", "4"},
	"logoType":           {"1", "2"},
	"brandIntensity":     {"1", "2", "3"},
	"textLayout":         {"1", "2", "3"},
}

// DefaultForm returns the initial questionnaire state used at session start.
func DefaultForm() CoverFormData {
	return CoverFormData{
		MainTitle:          "如何生成大量图片的提示词",
		SubTitle:           "获取百万流量",
		PromiseLevel:       "2",
		CoverType:          "2",
		PersonSource:       "2",
		PersonPosition:     "2",
		ExpressionStrength: "2",
		ColorStyle:         "3",
		BackgroundElement:  "1",
		BrandName:          "",
		LogoType:           "1",
		BrandIntensity:     "2",
		TextLayout:         "1",
	}
}

// ProxyDefaultForm returns the fixed configuration used by the public
// generate endpoint: only the two title fields come from the caller.
func ProxyDefaultForm(mainTitle, subTitle string) CoverFormData {
	if strings.TrimSpace(subTitle) == "" {
		subTitle = "获取百万流量"
	}
	return CoverFormData{
		MainTitle:          mainTitle,
		SubTitle:           subTitle,
		PromiseLevel:       "2",
		CoverType:          "2",
		PersonSource:       "2",
		PersonPosition:     "2",
		ExpressionStrength: "2",
		ColorStyle:         "3",
		BackgroundElement:  "1",
		LogoType:           "1",
		BrandIntensity:     "2",
		TextLayout:         "1",
	}
}

// Validate checks the invariants the UI affordances normally guarantee:
// a non-empty main title and every enumerated field inside its option set.
func (f *CoverFormData) Validate() error {
	if strings.TrimSpace(f.MainTitle) == "" {
		return NewValidationError("mainTitle", "main title is required")
	}
	fields := map[string]string{
		"promiseLevel":       f.PromiseLevel,
		"coverType":          f.CoverType,
		"personSource":       f.PersonSource,
		"personPosition":     f.PersonPosition,
		"expressionStrength": f.ExpressionStrength,
		"colorStyle":         f.ColorStyle,
		"backgroundElement":  f.BackgroundElement,
		"logoType":           f.LogoType,
		"brandIntensity":     f.BrandIntensity,
		"textLayout":         f.TextLayout,
	}
	for name, value := range fields {
		if !optionAllowed(name, value) {
			return NewValidationError(name, "value "+value+" is not a valid option")
		}
	}
	return nil
}

// NeedsPersonUpload reports whether the user must attach a person photo.
func (f *CoverFormData) NeedsPersonUpload() bool {
	return f.PersonSource == PersonSourceUpload
}

// NeedsPresetPerson reports whether the configured preset photo is used.
func (f *CoverFormData) NeedsPresetPerson() bool {
	return f.PersonSource == PersonSourcePreset
}

// NeedsLogoUpload reports whether the user must attach a logo image.
func (f *CoverFormData) NeedsLogoUpload() bool {
	return f.LogoType == LogoTypeImage
}

func optionAllowed(field, value string) bool {
	for _, v := range formOptions[field] {
		if v == value {
			return true
		}
	}
	return false
}
