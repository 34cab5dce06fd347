package cms

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPageFromContentDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "pages"), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := `---
title: "Sobre o Projeto"
summary: "Resumo curto."
updated_at: 2025-06-01
---
## Missão

Texto em markdown.`
	if err := os.WriteFile(filepath.Join(dir, "pages", "about.pt.md"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir, "pt")
	page, err := store.Page(KindPage, "about", "pt")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Title != "Sobre o Projeto" {
		t.Errorf("title = %q", page.Title)
	}
	if page.Format != "markdown" {
		t.Errorf("format = %q", page.Format)
	}
	if page.Body != "## Missão\n\nTexto em markdown." {
		t.Errorf("body = %q", page.Body)
	}
	if page.UpdatedAt.IsZero() {
		t.Error("updated_at not parsed")
	}
}

func TestPageLanguageChain(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "pages"), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := "---\ntitle: \"Só PT\"\n---\ncorpo"
	if err := os.WriteFile(filepath.Join(dir, "pages", "about.pt.md"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir, "pt")
	// no about.es.md on disk: the pt file must serve
	page, err := store.Page(KindPage, "about", "es")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Title != "Só PT" {
		t.Errorf("title = %q", page.Title)
	}
}

func TestPageFallsBackToEmbedded(t *testing.T) {
	store := NewStore("", "pt")

	page, err := store.Page(KindPage, "about", "en")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Lang != "en" || page.Title == "" {
		t.Errorf("page = %+v", page)
	}

	for _, slug := range LegalSlugs() {
		if _, err := store.Page(KindLegal, slug, "pt"); err != nil {
			t.Errorf("legal %q: %v", slug, err)
		}
	}

	// es has no disclaimer translation baked in; the chain must still land
	page, err = store.Page(KindLegal, "disclaimer", "es")
	if err != nil {
		t.Fatalf("disclaimer es: %v", err)
	}
	if page.Body == "" {
		t.Error("disclaimer body empty")
	}
}

func TestPageUnknownSlug(t *testing.T) {
	store := NewStore("", "pt")
	if _, err := store.Page(KindPage, "nope", "pt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := store.Page(KindPage, "  ", "pt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("blank slug err = %v, want ErrNotFound", err)
	}
}

func TestSplitFrontMatterWithoutBlock(t *testing.T) {
	fm, body, err := splitFrontMatter("just a body\nwith two lines")
	if err != nil {
		t.Fatal(err)
	}
	if fm.Title != "" {
		t.Errorf("front matter = %+v", fm)
	}
	if body != "just a body\nwith two lines" {
		t.Errorf("body = %q", body)
	}
}
