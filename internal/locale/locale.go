// Package locale detects the request language and serves translated strings.
package locale

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// Default is used when no supported locale is requested
	Default = "de"
	// CookieName is the cookie that stores an explicit locale choice
	CookieName = "locale"
	// QueryParam is the query parameter that selects a locale
	QueryParam = "lang"
)

// Supported lists the locales the hub is translated into, default first
var Supported = []string{"de", "en"}

var matcher = language.NewMatcher([]language.Tag{language.German, language.English})

type contextKey struct{}

// IsSupported reports whether the locale is one of Supported
func IsSupported(locale string) bool {
	for _, s := range Supported {
		if s == locale {
			return true
		}
	}

	return false
}

// Normalize maps a locale string to a supported locale, or Default
func Normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if IsSupported(locale) {
		return locale
	}

	if tag, err := language.Parse(locale); err == nil {
		base, _ := tag.Base()
		if IsSupported(base.String()) {
			return base.String()
		}
	}

	return Default
}

// Detect picks the locale of a request: the locale cookie, then the lang query
// parameter, then the Accept-Language header, then Default
func Detect(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if l := strings.ToLower(strings.TrimSpace(c.Value)); IsSupported(l) {
			return l
		}
	}

	if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(QueryParam))); IsSupported(q) {
		return q
	}

	if header := r.Header.Get("Accept-Language"); header != "" {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil && len(tags) > 0 {
			_, index, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return Supported[index]
			}
		}
	}

	return Default
}

// Middleware stores the detected locale in the request context and sets the
// Content-Language response header
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := Detect(r)
		w.Header().Set("Content-Language", l)
		next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), l)))
	})
}

// WithLocale returns a context carrying the locale
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, contextKey{}, locale)
}

// FromContext returns the locale stored by Middleware, or Default
func FromContext(ctx context.Context) string {
	if l, ok := ctx.Value(contextKey{}).(string); ok && l != "" {
		return l
	}

	return Default
}

// Tag returns the language tag of a supported locale
func Tag(locale string) language.Tag {
	if Normalize(locale) == "en" {
		return language.English
	}

	return language.German
}

// FormatEUR formats a whole euro amount with the locale's digit grouping
func FormatEUR(locale string, amount int64) string {
	p := message.NewPrinter(Tag(locale))
	if Normalize(locale) == "en" {
		return p.Sprintf("EUR %d", amount)
	}

	return p.Sprintf("%d EUR", amount)
}
