package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"milagres.org/milagres-web/internal/catalog"
	handlersPkg "milagres.org/milagres-web/internal/handlers"
	mw "milagres.org/milagres-web/internal/middleware"
	"milagres.org/milagres-web/internal/seo"
)

// AdminImportForm renders the bulk import page.
func (a *app) AdminImportForm(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	vm := handlersPkg.ImportData{
		PageData: a.pageData(r, a.bundle.T(lang, "admin.importTitle"), lang),
	}
	vm.SEO = seo.ForAdmin(vm.Title)
	a.renderPage(w, r, "admin_import", vm)
}

// AdminImportSubmit runs one batch import. Documents that fail local parsing
// are rejected here; well-formed batches go to the backend in a single
// request and the per-item report is rendered.
func (a *app) AdminImportSubmit(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	raw := r.PostFormValue("payload")
	token := mw.GetSession(r).Token

	vm := handlersPkg.ImportData{
		PageData: a.pageData(r, a.bundle.T(lang, "admin.importTitle"), lang),
		Raw:      raw,
	}
	vm.SEO = seo.ForAdmin(vm.Title)

	report, err := a.importer.Import(r.Context(), token, raw)
	switch {
	case errors.Is(err, catalog.ErrMalformedInput):
		vm.Error = a.bundle.T(lang, "admin.importNotJSON")
	case errors.Is(err, catalog.ErrInvalidShape):
		vm.Error = a.bundle.T(lang, "admin.importBadShape")
	case err != nil:
		a.log.Error("bulk import", zap.Error(err))
		vm.Error = a.bundle.T(lang, "admin.importUnavailable")
	default:
		vm.Report = &report
		a.log.Info("bulk import",
			zap.Int("imported", report.ImportedCount),
			zap.Int("errors", report.ErrorCount),
		)
	}

	if mw.IsHTMX(r.Context()) {
		a.renderPage(w, r, "frag_import_result", vm)
		return
	}
	status := http.StatusOK
	if vm.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	a.renderStatus(w, r, status, "admin_import", vm)
}

// AdminImportTemplate serves the example batch document as a download.
func (a *app) AdminImportTemplate(w http.ResponseWriter, r *http.Request) {
	body, err := a.client.Template(r.Context())
	if err != nil {
		a.log.Error("import template", zap.Error(err))
		http.Error(w, "template unavailable", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="miracles_template.json"`)
	_, _ = w.Write(body)
}
