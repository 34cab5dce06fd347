package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"milagres.org/milagres-web/internal/catalog"
	handlersPkg "milagres.org/milagres-web/internal/handlers"
	mw "milagres.org/milagres-web/internal/middleware"
	"milagres.org/milagres-web/internal/seo"
)

// AdminLoginHandler renders the login form. A signed-in admin is sent
// straight to the dashboard.
func (a *app) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	if mw.GetSession(r).Token != "" {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	lang := mw.Lang(r)
	vm := handlersPkg.LoginData{
		PageData: a.pageData(r, a.bundle.T(lang, "admin.loginTitle"), lang),
		Next:     sanitizeNext(r.URL.Query().Get("next")),
	}
	vm.SEO = seo.ForAdmin(vm.Title)
	a.renderPage(w, r, "admin_login", vm)
}

// AdminLoginSubmit exchanges the form credentials for a backend token and
// binds it to a fresh session.
func (a *app) AdminLoginSubmit(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	next := sanitizeNext(r.PostFormValue("next"))

	creds, err := a.client.Login(r.Context(), email, password)
	if err != nil {
		vm := handlersPkg.LoginData{
			PageData: a.pageData(r, a.bundle.T(lang, "admin.loginTitle"), lang),
			Email:    email,
			Next:     next,
		}
		vm.SEO = seo.ForAdmin(vm.Title)
		status := http.StatusBadGateway
		vm.Error = a.bundle.T(lang, "admin.loginUnavailable")
		if errors.Is(err, catalog.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
			vm.Error = a.bundle.T(lang, "admin.loginFailed")
		} else {
			a.log.Error("admin login", zap.Error(err))
		}
		a.renderStatus(w, r, status, "admin_login", vm)
		return
	}

	s := mw.GetSession(r)
	s.RegenerateID() // prevent session fixation across the auth boundary
	s.Token = creds.Token
	s.UserID = creds.UserID
	s.UserName = creds.UserName
	s.MarkDirty()
	a.log.Info("admin login", zap.String("user_id", creds.UserID))

	if next == "" {
		next = "/admin"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// AdminLogout drops the admin credentials and returns to the home page.
func (a *app) AdminLogout(w http.ResponseWriter, r *http.Request) {
	mw.GetSession(r).ClearAuth()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AdminDashboard renders the full catalog table with per-record and
// per-century delete controls.
func (a *app) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)

	// Admins see the whole catalog, investigating records included.
	all := catalog.Filters{ShowInvestigating: true}
	items, err := a.client.List(r.Context(), all)
	if err != nil {
		a.log.Error("admin list", zap.Error(err))
	}
	stats, serr := a.overview.Stats(r.Context())
	if serr != nil {
		a.log.Warn("load stats", zap.Error(serr))
	}
	facets, ferr := a.overview.Facets(r.Context())
	if ferr != nil {
		a.log.Warn("load facets", zap.Error(ferr))
	}
	sortCenturies(facets.Centuries)

	vm := handlersPkg.DashboardData{
		PageData:  a.pageData(r, a.bundle.T(lang, "admin.title"), lang),
		Stats:     stats,
		Centuries: facets.Centuries,
		LoadErr:   err != nil,
	}
	for _, m := range items {
		vm.Rows = append(vm.Rows, handlersPkg.BuildCard(m, lang))
	}
	if n, convErr := strconv.Atoi(r.URL.Query().Get("deleted")); convErr == nil && n > 0 {
		vm.Deleted = n
	}
	vm.Saved = r.URL.Query().Get("saved") == "1"
	vm.SEO = seo.ForAdmin(vm.Title)
	a.renderPage(w, r, "admin_dashboard", vm)
}

// AdminDeleteMiracle removes one record and returns to the dashboard.
func (a *app) AdminDeleteMiracle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token := mw.GetSession(r).Token
	err := a.client.Delete(r.Context(), token, id)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		// already gone; the dashboard reload reflects that
	case err != nil:
		a.log.Error("admin delete", zap.String("id", id), zap.Error(err))
	default:
		a.log.Info("admin delete", zap.String("id", id))
	}
	http.Redirect(w, r, "/admin?deleted=1", http.StatusSeeOther)
}

// AdminDeleteByCentury removes every record in the selected century.
func (a *app) AdminDeleteByCentury(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	century := strings.TrimSpace(r.PostFormValue("century"))
	token := mw.GetSession(r).Token
	n, err := a.client.DeleteByCentury(r.Context(), token, century)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		a.log.Error("admin delete century", zap.String("century", century), zap.Error(err))
	} else {
		a.log.Info("admin delete century", zap.String("century", century), zap.Int("deleted", n))
	}
	http.Redirect(w, r, "/admin?deleted="+strconv.Itoa(n), http.StatusSeeOther)
}

// sanitizeNext keeps post-login redirects on-site.
func sanitizeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	if u, err := url.Parse(next); err != nil || u.Host != "" {
		return ""
	}
	return next
}
