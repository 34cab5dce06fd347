package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"milagres.org/milagres-web/internal/catalog"
	handlersPkg "milagres.org/milagres-web/internal/handlers"
	mw "milagres.org/milagres-web/internal/middleware"
	"milagres.org/milagres-web/internal/seo"
)

// AdminMiracleNew renders an empty create form.
func (a *app) AdminMiracleNew(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	vm := handlersPkg.FormData{
		PageData: a.pageData(r, a.bundle.T(lang, "admin.newTitle"), lang),
		Form:     handlersPkg.MiracleForm{Status: string(catalog.StatusRecognized)},
	}
	vm.SEO = seo.ForAdmin(vm.Title)
	a.renderPage(w, r, "admin_form", vm)
}

// AdminMiracleEdit renders the edit form prefilled from the backend record.
func (a *app) AdminMiracleEdit(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	id := chi.URLParam(r, "id")

	m, err := a.client.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		a.NotFoundHandler(w, r)
		return
	}
	if err != nil {
		a.log.Error("load miracle form", zap.String("id", id), zap.Error(err))
		a.renderStatus(w, r, http.StatusBadGateway, "unavailable", a.pageData(r, a.bundle.T(lang, "error.unavailableTitle"), lang))
		return
	}

	vm := handlersPkg.FormData{
		PageData: a.pageData(r, a.bundle.T(lang, "admin.editTitle"), lang),
		ID:       m.ID,
		Form:     handlersPkg.FormFromMiracle(m),
	}
	vm.SEO = seo.ForAdmin(vm.Title)
	a.renderPage(w, r, "admin_form", vm)
}

// AdminMiracleCreate validates the submitted form and creates the record.
func (a *app) AdminMiracleCreate(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	form := miracleFormFromRequest(r)
	m, fieldErrs := a.buildMiracle(lang, form)

	vm := handlersPkg.FormData{
		PageData: a.pageData(r, a.bundle.T(lang, "admin.newTitle"), lang),
		Form:     form,
		Errors:   fieldErrs,
	}
	vm.SEO = seo.ForAdmin(vm.Title)
	if len(fieldErrs) > 0 {
		a.renderStatus(w, r, http.StatusUnprocessableEntity, "admin_form", vm)
		return
	}

	created, err := a.client.Create(r.Context(), mw.GetSession(r).Token, m)
	if err != nil {
		a.log.Error("admin create", zap.Error(err))
		vm.Failed = true
		a.renderStatus(w, r, http.StatusBadGateway, "admin_form", vm)
		return
	}
	a.log.Info("admin create", zap.String("id", created.ID))
	http.Redirect(w, r, "/admin?saved=1", http.StatusSeeOther)
}

// AdminMiracleUpdate validates the submitted form and replaces the record.
func (a *app) AdminMiracleUpdate(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	form := miracleFormFromRequest(r)
	m, fieldErrs := a.buildMiracle(lang, form)

	vm := handlersPkg.FormData{
		PageData: a.pageData(r, a.bundle.T(lang, "admin.editTitle"), lang),
		ID:       id,
		Form:     form,
		Errors:   fieldErrs,
	}
	vm.SEO = seo.ForAdmin(vm.Title)
	if len(fieldErrs) > 0 {
		a.renderStatus(w, r, http.StatusUnprocessableEntity, "admin_form", vm)
		return
	}

	_, err := a.client.Update(r.Context(), mw.GetSession(r).Token, id, m)
	if errors.Is(err, catalog.ErrNotFound) {
		a.NotFoundHandler(w, r)
		return
	}
	if err != nil {
		a.log.Error("admin update", zap.String("id", id), zap.Error(err))
		vm.Failed = true
		a.renderStatus(w, r, http.StatusBadGateway, "admin_form", vm)
		return
	}
	a.log.Info("admin update", zap.String("id", id))
	http.Redirect(w, r, "/admin?saved=1", http.StatusSeeOther)
}

// miracleFormFromRequest reads every form field into the view model so a
// failed validation re-renders what the admin typed.
func miracleFormFromRequest(r *http.Request) handlersPkg.MiracleForm {
	return handlersPkg.MiracleForm{
		Name:                  strings.TrimSpace(r.PostFormValue("name")),
		Country:               strings.TrimSpace(r.PostFormValue("country")),
		CountryFlag:           strings.TrimSpace(r.PostFormValue("country_flag")),
		City:                  strings.TrimSpace(r.PostFormValue("city")),
		Century:               strings.TrimSpace(r.PostFormValue("century")),
		Year:                  strings.TrimSpace(r.PostFormValue("year")),
		Status:                strings.TrimSpace(r.PostFormValue("status")),
		HistoricalContext:     r.PostFormValue("historical_context"),
		PhenomenonDescription: r.PostFormValue("phenomenon_description"),
		ChurchVerdict:         r.PostFormValue("church_verdict"),
		Summary:               r.PostFormValue("summary"),
		CoverImageURL:         strings.TrimSpace(r.PostFormValue("cover_image_url")),
		Sections: catalog.EditorSections{
			Timeline:   r.PostFormValue("timeline"),
			Reports:    r.PostFormValue("reports"),
			Media:      r.PostFormValue("media"),
			References: r.PostFormValue("references"),
		},
		EN: translationFromRequest(r, "en"),
		ES: translationFromRequest(r, "es"),
	}
}

func translationFromRequest(r *http.Request, lang string) handlersPkg.TranslationForm {
	return handlersPkg.TranslationForm{
		Name:                  r.PostFormValue(lang + "_name"),
		HistoricalContext:     r.PostFormValue(lang + "_historical_context"),
		PhenomenonDescription: r.PostFormValue(lang + "_phenomenon_description"),
		ChurchVerdict:         r.PostFormValue(lang + "_church_verdict"),
		Summary:               r.PostFormValue(lang + "_summary"),
	}
}

// buildMiracle converts the form into a record, collecting localized field
// errors. The record is only meaningful when the error map comes back empty.
func (a *app) buildMiracle(lang string, f handlersPkg.MiracleForm) (catalog.Miracle, map[string]string) {
	errs := map[string]string{}
	required := func(field, val string) {
		if strings.TrimSpace(val) == "" {
			errs[field] = a.bundle.T(lang, "admin.errRequired")
		}
	}
	required("name", f.Name)
	required("country", f.Country)
	required("city", f.City)
	required("century", f.Century)

	status := catalog.StatusRecognized
	if f.Status == string(catalog.StatusInvestigating) {
		status = catalog.StatusInvestigating
	}
	m := catalog.Miracle{
		Name:                  f.Name,
		Country:               f.Country,
		CountryFlag:           f.CountryFlag,
		City:                  f.City,
		Century:               f.Century,
		Year:                  f.Year,
		Status:                status,
		HistoricalContext:     f.HistoricalContext,
		PhenomenonDescription: f.PhenomenonDescription,
		ChurchVerdict:         f.ChurchVerdict,
		Summary:               f.Summary,
		CoverImageURL:         f.CoverImageURL,
	}
	if f.EN != (handlersPkg.TranslationForm{}) || f.ES != (handlersPkg.TranslationForm{}) {
		m.Translations = map[string]catalog.Translation{}
		if f.EN != (handlersPkg.TranslationForm{}) {
			m.Translations["en"] = catalog.Translation(f.EN)
		}
		if f.ES != (handlersPkg.TranslationForm{}) {
			m.Translations["es"] = catalog.Translation(f.ES)
		}
	}
	if err := f.Sections.Apply(&m); err != nil {
		var se *catalog.SectionError
		if errors.As(err, &se) {
			errs[se.Section] = a.bundle.T(lang, "admin.errSectionJSON")
		}
	}
	return m, errs
}
