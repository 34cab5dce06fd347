package cms

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Page is a localized static page (about, legal texts) sourced from local
// markdown or the baked-in fallback set.
type Page struct {
	Kind          string
	Slug          string
	Lang          string
	Title         string
	Summary       string
	Body          string
	Format        string // "markdown" (default) or "html"
	EffectiveDate time.Time
	UpdatedAt     time.Time
	Version       string
}

// ErrNotFound indicates no page exists for the slug in any candidate language.
var ErrNotFound = errors.New("cms: page not found")

const (
	defaultFormat = "markdown"

	// KindPage and KindLegal partition the static content tree.
	KindPage  = "pages"
	KindLegal = "legal"
)

// Store resolves localized pages from a content directory, falling back to
// other languages and finally to the embedded defaults.
type Store struct {
	dir      string
	fallback string
}

// NewStore builds a page store rooted at dir. fallbackLang anchors the
// language chain; "pt" when empty.
func NewStore(dir, fallbackLang string) *Store {
	fallbackLang = strings.ToLower(strings.TrimSpace(fallbackLang))
	if fallbackLang == "" {
		fallbackLang = "pt"
	}
	return &Store{dir: strings.TrimSpace(dir), fallback: fallbackLang}
}

// Page returns the page for kind/slug in the best available language:
// the requested one, then the store fallback, then any embedded default.
func (s *Store) Page(kind, slug, lang string) (Page, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	candidates := []string{lang}
	if lang != s.fallback {
		candidates = append(candidates, s.fallback)
	}
	if s.dir != "" {
		for _, candidate := range candidates {
			page, err := s.readPage(kind, slug, candidate)
			if err == nil {
				return page, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return Page{}, err
			}
		}
	}
	return fallbackPage(kind, slug, candidates)
}

func (s *Store) readPage(kind, slug, lang string) (Page, error) {
	path := filepath.Join(s.dir, kind, fmt.Sprintf("%s.%s.md", slug, lang))
	raw, err := os.ReadFile(path)
	if err != nil {
		return Page{}, err
	}
	fm, body, err := splitFrontMatter(string(raw))
	if err != nil {
		return Page{}, fmt.Errorf("cms: parse %s: %w", path, err)
	}
	page := Page{
		Kind:          kind,
		Slug:          slug,
		Lang:          lang,
		Title:         fm.Title,
		Summary:       fm.Summary,
		Body:          body,
		Format:        strings.ToLower(strings.TrimSpace(fm.Format)),
		Version:       fm.Version,
		EffectiveDate: parseDate(fm.EffectiveDate),
		UpdatedAt:     parseDate(fm.UpdatedAt),
	}
	if page.Format == "" {
		page.Format = defaultFormat
	}
	if fm.Lang != "" {
		page.Lang = strings.ToLower(fm.Lang)
	}
	return page, nil
}

type frontMatter struct {
	Title         string `yaml:"title"`
	Summary       string `yaml:"summary"`
	Lang          string `yaml:"lang"`
	Format        string `yaml:"format"`
	EffectiveDate string `yaml:"effective_date"`
	UpdatedAt     string `yaml:"updated_at"`
	Version       string `yaml:"version"`
}

// splitFrontMatter separates a leading "---" YAML block from the body.
// A document without front matter is all body.
func splitFrontMatter(raw string) (frontMatter, string, error) {
	var fm frontMatter
	trimmed := strings.TrimLeft(raw, "\uFEFF\n\r")
	if !strings.HasPrefix(trimmed, "---") {
		return fm, strings.TrimSpace(raw), nil
	}
	rest := trimmed[3:]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return fm, strings.TrimSpace(raw), nil
	}
	block := rest[:idx]
	body := rest[idx+len("\n---"):]
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return frontMatter{}, "", err
	}
	return fm, strings.TrimSpace(strings.TrimPrefix(body, "\n")), nil
}

func parseDate(val string) time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts
		}
	}
	return time.Time{}
}
