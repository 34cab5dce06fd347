package main

import (
	"net/http"
	"sort"

	"go.uber.org/zap"

	"milagres.org/milagres-web/internal/catalog"
	"milagres.org/milagres-web/internal/format"
	handlersPkg "milagres.org/milagres-web/internal/handlers"
	mw "milagres.org/milagres-web/internal/middleware"
	"milagres.org/milagres-web/internal/seo"
)

// HomeHandler renders the landing page: filter controls, the stats strip,
// and the miracle grid.
func (a *app) HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	f := catalog.FiltersFromQuery(r.URL.Query())
	syncFilters(a.filters, f)

	items, err := a.queries.List(r.Context(), f)
	if err != nil {
		a.log.Warn("list miracles", zap.Error(err))
	}

	facets, ferr := a.overview.Facets(r.Context())
	if ferr != nil {
		a.log.Warn("load facets", zap.Error(ferr))
	}
	sortCenturies(facets.Centuries)
	stats, serr := a.overview.Stats(r.Context())
	if serr != nil {
		a.log.Warn("load stats", zap.Error(serr))
	}

	title := a.bundle.T(lang, "home.title")
	vm := handlersPkg.HomeData{
		PageData: a.pageData(r, title, lang),
		Filters:  f,
		Facets:   facets,
		Stats:    stats,
		Grid:     handlersPkg.BuildGrid(items, a.queries.Fetching(), err, f, lang),
	}
	vm.SEO = seo.ForPage(title, a.bundle.T(lang, "home.description"), canonicalPath(r))
	vm.JSONLD = append(vm.JSONLD, seo.JSONLD(seo.WebSite()), seo.JSONLD(seo.Organization()))

	a.renderPage(w, r, "home", vm)
}

// MiracleGridFrag re-renders the grid for the current filter selection.
// htmx swaps the fragment in place and pushes the canonical page URL.
func (a *app) MiracleGridFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	f := catalog.FiltersFromQuery(r.URL.Query())
	syncFilters(a.filters, f)

	items, err := a.queries.List(r.Context(), f)
	if err != nil {
		a.log.Warn("list miracles", zap.Error(err))
	}

	grid := handlersPkg.BuildGrid(items, a.queries.Fetching(), err, f, lang)
	push := "/"
	if grid.Query != "" {
		push = "/?" + grid.Query
	}
	w.Header().Set("HX-Push-Url", push)
	a.renderPage(w, r, "frag_miracle_grid", grid)
}

// syncFilters applies the request's filter selection to the shared store,
// touching only the fields that changed so observers see one event per edit.
func syncFilters(store *catalog.FilterStore, f catalog.Filters) {
	cur := store.Current()
	if cur.Search != f.Search {
		store.SetSearch(f.Search)
	}
	if cur.Country != f.Country {
		store.SetCountry(f.Country)
	}
	if cur.Century != f.Century {
		store.SetCentury(f.Century)
	}
	if cur.ShowInvestigating != f.ShowInvestigating {
		store.SetShowInvestigating(f.ShowInvestigating)
	}
}

func sortCenturies(centuries []string) {
	sort.SliceStable(centuries, func(i, j int) bool {
		return format.CenturyOrder(centuries[i]) < format.CenturyOrder(centuries[j])
	})
}
