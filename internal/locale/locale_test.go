package locale

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		cookie   string
		query    string
		header   string
		expected string
	}{
		{"nothing set", "", "", "", "de"},
		{"cookie wins", "en", "de", "de-AT", "en"},
		{"invalid cookie falls through to query", "fr", "en", "de", "en"},
		{"query before header", "", "de", "en-US,en;q=0.9", "de"},
		{"header english", "", "", "en-GB,en;q=0.9", "en"},
		{"header austrian german", "", "", "de-AT", "de"},
		{"header weighted", "", "", "fr-FR, en;q=0.8, de;q=0.5", "en"},
		{"unsupported header", "", "", "ja-JP", "de"},
		{"garbage header", "", "", ";;;", "de"},
		{"uppercase query", "", "EN", "", "en"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := "/api/health"
			if tc.query != "" {
				target += "?lang=" + tc.query
			}

			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tc.cookie})
			}

			if tc.header != "" {
				req.Header.Set("Accept-Language", tc.header)
			}

			assert.Equal(t, tc.expected, Detect(req))
		})
	}
}

func TestMiddleware(t *testing.T) {
	var seen string

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "en", seen)
	assert.Equal(t, "en", w.Header().Get("Content-Language"))
	assert.Equal(t, Default, FromContext(context.Background()))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "en", Normalize("EN"))
	assert.Equal(t, "de", Normalize("de-AT"))
	assert.Equal(t, "en", Normalize("en-US"))
	assert.Equal(t, "de", Normalize("fr"))
	assert.Equal(t, "de", Normalize(""))
	assert.Equal(t, language.English, Tag("en"))
	assert.Equal(t, language.German, Tag("it"))
}

func TestBundle(t *testing.T) {
	assert.Equal(t, "hoch", T("de", "tier.high"))
	assert.Equal(t, "high", T("en", "tier.high"))
	assert.Equal(t, "überfällig", T("fr", "status.overdue"))
	assert.Equal(t, "missing.key", T("en", "missing.key"))
	assert.Equal(t, "Grade B (64%)", Tf("en", "email.grade", map[string]string{"grade": "B", "percentage": "64"}))

	b, err := LoadBundle()
	require.NoError(t, err)

	// every german key has an english translation
	for key := range b.messages["de"] {
		_, ok := b.messages["en"][key]
		assert.True(t, ok, "missing english translation for %s", key)
	}

	require.NoError(t, b.Add("en", []byte("extra:\n  key: value\n")))
	assert.Equal(t, "value", b.T("en", "extra.key"))

	assert.ErrorIs(t, b.Add("en", []byte("[")), ErrBundleLoad)
}

func TestFormatEUR(t *testing.T) {
	assert.Equal(t, "EUR 20,000,000", FormatEUR("en", 20_000_000))
	assert.Equal(t, "20.000.000 EUR", FormatEUR("de", 20_000_000))
	assert.Equal(t, "0 EUR", FormatEUR("xx", 0))
}
