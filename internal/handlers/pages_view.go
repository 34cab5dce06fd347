package handlers

import (
	"html/template"

	"milagres.org/milagres-web/internal/catalog"
)

// StaticPageData is the view model for content-store pages (about, legal).
type StaticPageData struct {
	PageData
	Summary string
	Body    template.HTML
	Updated string
}

// ContactData is the view model for the contact form, on first render and
// after submission.
type ContactData struct {
	PageData
	Form   catalog.ContactMessage
	Errors map[string]string
	Sent   bool
	Failed bool
}
