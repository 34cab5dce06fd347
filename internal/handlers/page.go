package handlers

import (
	"html/template"

	"milagres.org/milagres-web/internal/middleware"
	"milagres.org/milagres-web/internal/nav"
	"milagres.org/milagres-web/internal/seo"
)

// PageData carries the fields every full page shares: layout chrome,
// locale, and head metadata. Page view models embed it.
type PageData struct {
	Title       string
	Lang        string
	Path        string
	Nav         []nav.Item
	LegalNav    []nav.Item
	Breadcrumbs []nav.Crumb
	SEO         seo.Meta
	JSONLD      []template.JS
	CSRFToken   string
	User        *middleware.User
}

// NewPageData fills the layout fields from the request context values
// the middleware chain established.
func NewPageData(title, lang, path string) PageData {
	return PageData{
		Title:    title,
		Lang:     lang,
		Path:     path,
		Nav:      nav.Main(path),
		LegalNav: nav.Legal(),
	}
}
