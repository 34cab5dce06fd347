package main

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"milagres.org/milagres-web/internal/catalog"
	"milagres.org/milagres-web/internal/cms"
	"milagres.org/milagres-web/internal/content"
	"milagres.org/milagres-web/internal/format"
	handlersPkg "milagres.org/milagres-web/internal/handlers"
	mw "milagres.org/milagres-web/internal/middleware"
	"milagres.org/milagres-web/internal/nav"
	"milagres.org/milagres-web/internal/seo"
)

// AboutHandler renders the mission page from the content store.
func (a *app) AboutHandler(w http.ResponseWriter, r *http.Request) {
	a.staticPage(w, r, cms.KindPage, "about")
}

// LegalHandler renders one of the legal documents.
func (a *app) LegalHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	known := false
	for _, s := range cms.LegalSlugs() {
		if s == slug {
			known = true
			break
		}
	}
	if !known {
		a.NotFoundHandler(w, r)
		return
	}
	a.staticPage(w, r, cms.KindLegal, slug)
}

func (a *app) staticPage(w http.ResponseWriter, r *http.Request, kind, slug string) {
	lang := mw.Lang(r)
	page, err := a.pages.Page(kind, slug, lang)
	if errors.Is(err, cms.ErrNotFound) {
		a.NotFoundHandler(w, r)
		return
	}
	if err != nil {
		a.log.Error("load page", zap.String("kind", kind), zap.String("slug", slug), zap.Error(err))
		a.NotFoundHandler(w, r)
		return
	}

	vm := handlersPkg.StaticPageData{
		PageData: a.pageData(r, page.Title, lang),
		Summary:  page.Summary,
	}
	if page.Format == "html" {
		vm.Body = content.SanitizeHTML(page.Body)
	} else {
		vm.Body = content.HTML(page.Body)
	}
	if !page.UpdatedAt.IsZero() {
		vm.Updated = format.Date(page.UpdatedAt, lang)
	}
	vm.Breadcrumbs = nav.Breadcrumbs(nav.Crumb{Label: page.Title})
	vm.SEO = seo.ForPage(page.Title, page.Summary, r.URL.Path)

	a.renderPage(w, r, "page", vm)
}

// ContactHandler renders the contact form.
func (a *app) ContactHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	vm := handlersPkg.ContactData{
		PageData: a.pageData(r, a.bundle.T(lang, "contact.title"), lang),
	}
	vm.Breadcrumbs = nav.Breadcrumbs(nav.Crumb{Label: vm.Title})
	vm.SEO = seo.ForPage(vm.Title, a.bundle.T(lang, "contact.description"), r.URL.Path)
	a.renderPage(w, r, "contact", vm)
}

// ContactSubmitHandler validates and forwards a visitor message.
func (a *app) ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	msg := catalog.ContactMessage{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}

	vm := handlersPkg.ContactData{
		PageData: a.pageData(r, a.bundle.T(lang, "contact.title"), lang),
		Form:     msg,
	}
	vm.Breadcrumbs = nav.Breadcrumbs(nav.Crumb{Label: vm.Title})
	vm.SEO = seo.ForPage(vm.Title, "", r.URL.Path)

	vm.Errors = map[string]string{}
	if msg.Name == "" {
		vm.Errors["name"] = a.bundle.T(lang, "contact.errRequired")
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		vm.Errors["email"] = a.bundle.T(lang, "contact.errEmail")
	}
	if msg.Message == "" {
		vm.Errors["message"] = a.bundle.T(lang, "contact.errRequired")
	}
	if len(vm.Errors) > 0 {
		a.renderStatus(w, r, http.StatusUnprocessableEntity, "contact", vm)
		return
	}

	if err := a.client.SubmitContact(r.Context(), msg); err != nil {
		a.log.Error("submit contact", zap.Error(err))
		vm.Failed = true
		a.renderStatus(w, r, http.StatusBadGateway, "contact", vm)
		return
	}

	vm.Sent = true
	vm.Form = catalog.ContactMessage{}
	a.renderPage(w, r, "contact", vm)
}
