package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// LocaleKey is the context key under which the resolved locale is stored.
var LocaleKey = localeContextKey{}

// supported lists the UI languages. Chinese is first and therefore the
// matcher's fallback.
var supported = []language.Tag{
	language.Chinese,
	language.English,
}

var matcher = language.NewMatcher(supported)

// Locale resolves the request language and stores "zh" or "en" in the
// context. An explicit X-Locale header wins over Accept-Language.
func Locale(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := resolveLocale(r, defaultLocale)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLocale(r *http.Request, fallback string) string {
	hints := make([]string, 0, 2)
	if v := r.Header.Get("X-Locale"); v != "" {
		hints = append(hints, v)
	}
	if v := r.Header.Get("Accept-Language"); v != "" {
		hints = append(hints, v)
	}
	if len(hints) == 0 {
		if fallback != "" {
			return fallback
		}
		return "zh"
	}
	tag, _ := language.MatchStrings(matcher, hints...)
	base, _ := tag.Base()
	if base.String() == "en" {
		return "en"
	}
	return "zh"
}

// LocaleFromContext returns the resolved locale, defaulting to Chinese.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return "zh"
}
