package domain

import (
	"errors"
	"testing"
)

func TestDefaultFormValidates(t *testing.T) {
	form := DefaultForm()
	if err := form.Validate(); err != nil {
		t.Fatalf("Validate returned error for defaults: %v", err)
	}
}

func TestValidateRejectsEmptyMainTitle(t *testing.T) {
	form := DefaultForm()
	form.MainTitle = "   "
	err := form.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate returned %v, want ValidationError", err)
	}
	if verr.Field != "mainTitle" {
		t.Fatalf("Field = %q, want mainTitle", verr.Field)
	}
}

func TestValidateRejectsUnknownOption(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*CoverFormData)
	}{
		{"promiseLevel", func(f *CoverFormData) { f.PromiseLevel = "9" }},
		{"backgroundElement", func(f *CoverFormData) { f.BackgroundElement = "5" }},
		{"logoType", func(f *CoverFormData) { f.LogoType = "3" }},
		{"textLayout", func(f *CoverFormData) { f.TextLayout = "" }},
	}
	for _, tc := range cases {
		form := DefaultForm()
		tc.mutate(&form)
		err := form.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: Validate returned %v, want ValidationError", tc.field, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("Field = %q, want %q", verr.Field, tc.field)
		}
	}
}

func TestProxyDefaultFormAppliesSubtitleFallback(t *testing.T) {
	form := ProxyDefaultForm("如何10秒做封面", "")
	if form.SubTitle != "获取百万流量" {
		t.Fatalf("SubTitle = %q, want default subtitle", form.SubTitle)
	}
	if form.PersonSource != PersonSourceAI {
		t.Fatalf("PersonSource = %q, want AI-generated default", form.PersonSource)
	}
	if err := form.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	form = ProxyDefaultForm("t", "custom")
	if form.SubTitle != "custom" {
		t.Fatalf("SubTitle = %q, want caller value", form.SubTitle)
	}
}

func TestImageRequirementHelpers(t *testing.T) {
	form := DefaultForm()
	if form.NeedsPersonUpload() || form.NeedsPresetPerson() || form.NeedsLogoUpload() {
		t.Fatal("defaults should not require any image")
	}
	form.PersonSource = PersonSourceUpload
	if !form.NeedsPersonUpload() {
		t.Fatal("NeedsPersonUpload = false, want true")
	}
	form.PersonSource = PersonSourcePreset
	if !form.NeedsPresetPerson() {
		t.Fatal("NeedsPresetPerson = false, want true")
	}
	form.LogoType = LogoTypeImage
	if !form.NeedsLogoUpload() {
		t.Fatal("NeedsLogoUpload = false, want true")
	}
}
