package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"milagres.org/milagres-web/internal/i18n"
)

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	dir := t.TempDir()
	for _, lang := range []string{"pt", "en", "es"} {
		if err := os.WriteFile(filepath.Join(dir, lang+".yaml"), []byte("k: v\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	b, err := i18n.Load(dir, "pt", []string{"pt", "en", "es"})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func localeChain(t *testing.T, m *SessionManager, b *i18n.Bundle) (http.Handler, *string) {
	t.Helper()
	var lang string
	h := m.Middleware(Locale(b)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang = Lang(r)
	})))
	return h, &lang
}

func TestLocaleQueryOverride(t *testing.T) {
	m := NewSessionManager([]byte("k"), false)
	h, lang := localeChain(t, m, testBundle(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?hl=es", nil))
	if *lang != "es" {
		t.Fatalf("lang = %q, want es", *lang)
	}
	if rec.Header().Get("Content-Language") != "es" {
		t.Errorf("Content-Language = %q", rec.Header().Get("Content-Language"))
	}

	var hlCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "hl" {
			hlCookie = c
		}
	}
	if hlCookie == nil || hlCookie.Value != "es" {
		t.Fatalf("hl cookie = %+v", hlCookie)
	}
}

func TestLocaleUnsupportedOverrideFallsBack(t *testing.T) {
	m := NewSessionManager([]byte("k"), false)
	h, lang := localeChain(t, m, testBundle(t))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?hl=de", nil))
	if *lang != "pt" {
		t.Fatalf("lang = %q, want pt", *lang)
	}
}

func TestLocaleFromAcceptLanguage(t *testing.T) {
	m := NewSessionManager([]byte("k"), false)
	h, lang := localeChain(t, m, testBundle(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,pt;q=0.5")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if *lang != "en" {
		t.Fatalf("lang = %q, want en", *lang)
	}
}

func TestLocaleStickyInSession(t *testing.T) {
	m := NewSessionManager([]byte("k"), false)
	h, lang := localeChain(t, m, testBundle(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?hl=en", nil))

	// next request carries only the session cookie; language must persist
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "es")
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			req.AddCookie(c)
		}
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	if *lang != "en" {
		t.Fatalf("lang = %q, want sticky en", *lang)
	}
}
