package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"coverstudio/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want MessageKey
	}{
		{"missing credential", domain.ErrNoCredential, KeyMissingCredential},
		{"safety", domain.ErrSafetyBlocked, KeySafety},
		{"empty response", domain.ErrEmptyResponse, KeyCandidate},
		{"no image data", domain.ErrNoImageData, KeyCandidate},
		{"forbidden", &domain.ProviderError{StatusCode: 403}, KeyPermission},
		{"unauthorized", &domain.ProviderError{StatusCode: 401}, KeyPermission},
		{"rate limited", &domain.ProviderError{StatusCode: 429}, KeyRateLimited},
		{"server error", &domain.ProviderError{StatusCode: 503}, KeyServiceDown},
		{"transport failure", &domain.ProviderError{Err: errors.New("dial tcp: timeout")}, KeyNetwork},
		{"preset fetch", &domain.FetchError{URL: "https://example.com/p.jpg", Err: errors.New("404")}, KeyPresetFetch},
		{"parse", &domain.ParseError{Raw: "not json", Err: errors.New("bad")}, KeyParse},
		{"wrapped provider error", fmt.Errorf("stage: %w", &domain.ProviderError{StatusCode: 429}), KeyRateLimited},
		{"unknown", errors.New("boom"), KeyGeneric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Fatalf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestTranslateLocaleFallback(t *testing.T) {
	if got := Translate(domain.ErrSafetyBlocked, "en"); got != messages[KeySafety]["en"] {
		t.Fatalf("en translation = %q", got)
	}
	// Unknown locales fall back to Chinese, the product's primary language.
	if got := Translate(domain.ErrSafetyBlocked, "fr"); got != messages[KeySafety]["zh"] {
		t.Fatalf("fallback translation = %q", got)
	}
}

func TestTranslateGenericEmbedsCause(t *testing.T) {
	got := Translate(errors.New("boom"), "zh")
	if got != "生成出错: boom" {
		t.Fatalf("Translate = %q", got)
	}
}

func TestTranslatePassesValidationMessageThrough(t *testing.T) {
	err := domain.NewValidationError("mainTitle", "请填写主标题")
	if got := Translate(err, "en"); got != "请填写主标题" {
		t.Fatalf("Translate = %q, want the field message untouched", got)
	}
}

func TestEveryMessageHasBothLocales(t *testing.T) {
	for key, table := range messages {
		for _, locale := range []string{"zh", "en"} {
			if table[locale] == "" {
				t.Errorf("message %q missing %q entry", key, locale)
			}
		}
	}
}
