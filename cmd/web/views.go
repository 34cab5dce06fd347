package main

import (
	"net/http"
	"time"

	handlersPkg "milagres.org/milagres-web/internal/handlers"
	mw "milagres.org/milagres-web/internal/middleware"
)

// pageData assembles the common layout fields for a full page render.
func (a *app) pageData(r *http.Request, title, lang string) handlersPkg.PageData {
	pd := handlersPkg.NewPageData(title, lang, r.URL.Path)
	pd.CSRFToken = mw.GetSession(r).CSRFToken
	pd.User = mw.UserFromContext(r.Context())
	return pd
}

// canonicalPath gives the path plus the significant query parameters, for
// canonical links and og:url.
func canonicalPath(r *http.Request) string {
	p := r.URL.Path
	if q := r.URL.Query().Encode(); q != "" && p == "/" {
		p += "?" + q
	}
	return p
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
