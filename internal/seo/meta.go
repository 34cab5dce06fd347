package seo

import "strings"

// Meta holds the per-page head metadata rendered by the base template.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	Type        string // og:type, defaults to "website"
	NoIndex     bool
}

const (
	siteName   = "Milagres Eucarísticos"
	defaultURL = "https://milagres.org"
)

// ForPage fills defaults for a regular page.
func ForPage(title, description, path string) Meta {
	return Meta{
		Title:       pageTitle(title),
		Description: clip(description, 160),
		Canonical:   defaultURL + path,
		Type:        "website",
	}
}

// ForArticle fills defaults for a miracle detail page.
func ForArticle(title, description, path, image string) Meta {
	m := ForPage(title, description, path)
	m.Type = "article"
	m.Image = image
	return m
}

// ForAdmin marks administrative pages as not indexable.
func ForAdmin(title string) Meta {
	return Meta{Title: pageTitle(title), Type: "website", NoIndex: true}
}

func pageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return siteName
	}
	return title + " · " + siteName
}

func clip(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	cut := strings.LastIndex(s[:max], " ")
	if cut <= 0 {
		cut = max
	}
	return s[:cut] + "…"
}
