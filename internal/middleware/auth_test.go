package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireAdminRedirectsAnonymous(t *testing.T) {
	m := NewSessionManager([]byte("k"), false)
	h := m.Middleware(RequireAdmin("/admin/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler ran for anonymous request")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/import", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if loc != "/admin/login?next=%2Fadmin%2Fimport" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequireAdminHTMXGetsRedirectHeader(t *testing.T) {
	m := NewSessionManager([]byte("k"), false)
	h := HTMX(m.Middleware(RequireAdmin("/admin/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler ran")
	}))))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if rec.Header().Get("HX-Redirect") != "/admin/login" {
		t.Errorf("HX-Redirect = %q", rec.Header().Get("HX-Redirect"))
	}
}

func TestRequireAdminPassesAuthenticated(t *testing.T) {
	m := NewSessionManager([]byte("k"), false)

	// login to obtain a session cookie with a token
	rec := httptest.NewRecorder()
	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		s.Token = "tok"
		s.MarkDirty()
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	called := false
	h := m.Middleware(RequireAdmin("/admin/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			req.AddCookie(c)
		}
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("authenticated request was blocked")
	}
}
