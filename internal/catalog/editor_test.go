package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestSectionsRoundTrip(t *testing.T) {
	m := Miracle{
		Name: "Milagre de Teste",
		Timeline: []TimelineEvent{
			{Year: "750", Title: "Ocorrência", Description: "Durante a missa."},
		},
		Media: []MediaItem{
			{Kind: MediaYouTube, URL: "https://youtu.be/abc", Title: "Documentário"},
		},
		References: []Reference{
			{Citation: "LINOLI, 1971.", URL: "https://example.com"},
		},
	}

	s := SectionsFromMiracle(m)
	if !strings.Contains(s.Timeline, `"year": "750"`) {
		t.Errorf("timeline JSON = %q", s.Timeline)
	}
	if s.Reports != "" {
		t.Errorf("empty section should render empty, got %q", s.Reports)
	}

	var out Miracle
	if err := s.Apply(&out); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out.Timeline) != 1 || out.Timeline[0].Title != "Ocorrência" {
		t.Errorf("timeline = %+v", out.Timeline)
	}
	if len(out.Media) != 1 || out.Media[0].Kind != MediaYouTube {
		t.Errorf("media = %+v", out.Media)
	}
	if len(out.References) != 1 || out.References[0].Citation != "LINOLI, 1971." {
		t.Errorf("references = %+v", out.References)
	}
}

func TestSectionsApplyClearsOnBlank(t *testing.T) {
	m := Miracle{Timeline: []TimelineEvent{{Year: "750"}}}
	if err := (EditorSections{}).Apply(&m); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if m.Timeline != nil {
		t.Errorf("blank section should clear the slice, got %+v", m.Timeline)
	}
}

func TestSectionsApplyNamesBadSection(t *testing.T) {
	s := EditorSections{
		Timeline: `[{"year": "750"}]`,
		Media:    `{"type": "image"}`, // object, not a list
	}
	var m Miracle
	err := s.Apply(&m)
	var se *SectionError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want SectionError", err)
	}
	if se.Section != "media" {
		t.Errorf("section = %q, want media", se.Section)
	}
}

func TestSectionsApplyNormalizesMediaKind(t *testing.T) {
	s := EditorSections{Media: `[{"type": "pdf", "url": "https://example.com/laudo.pdf"}]`}
	var m Miracle
	if err := s.Apply(&m); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(m.Media) != 1 || m.Media[0].Kind != MediaDocument {
		t.Errorf("media = %+v", m.Media)
	}
}
