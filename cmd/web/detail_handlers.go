package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"milagres.org/milagres-web/internal/catalog"
	"milagres.org/milagres-web/internal/content"
	handlersPkg "milagres.org/milagres-web/internal/handlers"
	mw "milagres.org/milagres-web/internal/middleware"
	"milagres.org/milagres-web/internal/nav"
	"milagres.org/milagres-web/internal/seo"
)

// MiracleDetailHandler renders one miracle's full record. An unknown
// identifier gets the dedicated not-found page, never an empty detail view.
func (a *app) MiracleDetailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	id := chi.URLParam(r, "id")

	m, err := a.client.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		a.NotFoundHandler(w, r)
		return
	}
	if err != nil {
		a.log.Error("get miracle", zap.String("id", id), zap.Error(err))
		a.renderStatus(w, r, http.StatusBadGateway, "unavailable", a.pageData(r, a.bundle.T(lang, "error.unavailableTitle"), lang))
		return
	}

	vm := handlersPkg.BuildDetail(m, lang, content.HTML)
	loc := m.Localized(lang)
	vm.PageData = a.pageData(r, loc.Name, lang)
	vm.Breadcrumbs = nav.Breadcrumbs(nav.Crumb{Label: loc.Name})
	vm.SEO = seo.ForArticle(loc.Name, loc.Summary, canonicalPath(r), vm.Card.Image)
	vm.JSONLD = append(vm.JSONLD, seo.JSONLD(seo.Article(
		loc.Name, loc.Summary, canonicalPath(r), vm.Card.Image,
		isoDate(m.CreatedAt), isoDate(m.UpdatedAt),
	)))

	a.renderPage(w, r, "detail", vm)
}

// NotFoundHandler renders the localized 404 page.
func (a *app) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	pd := a.pageData(r, a.bundle.T(lang, "error.notFoundTitle"), lang)
	pd.SEO = seo.ForPage(pd.Title, "", r.URL.Path)
	pd.SEO.NoIndex = true
	a.renderStatus(w, r, http.StatusNotFound, "notfound", pd)
}
