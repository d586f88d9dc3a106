package middleware

import (
	"context"
	"net/http"

	"hisab/backend/locale"
)

// LocaleHeader carries the client's display language.
const LocaleHeader = "x-locale"

const localeKey contextKey = "locale"

// Locale reads the display language from the x-locale header. Unknown or
// missing values resolve to English.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loc := locale.Parse(r.Header.Get(LocaleHeader))
		next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), loc)))
	})
}

// WithLocale returns a copy of ctx carrying loc.
func WithLocale(ctx context.Context, loc locale.Locale) context.Context {
	return context.WithValue(ctx, localeKey, loc)
}

// GetLocaleFromContext returns the request's locale, English if none was set.
func GetLocaleFromContext(r *http.Request) locale.Locale {
	if loc, ok := r.Context().Value(localeKey).(locale.Locale); ok {
		return loc
	}
	return locale.Default
}
