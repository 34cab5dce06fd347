package handlers

import (
	"errors"
	"strings"
	"testing"

	"milagres.org/milagres-web/internal/catalog"
)

func sample() catalog.Miracle {
	return catalog.Miracle{
		ID:                    "mir_x",
		Name:                  "Milagre X",
		Country:               "Itália",
		City:                  "Roma",
		Century:               "IX",
		Year:                  "850",
		Status:                catalog.StatusInvestigating,
		Summary:               "Resumo.",
		HistoricalContext:     "Contexto **importante**.",
		PhenomenonDescription: "Fenômeno.",
		ChurchVerdict:         "Em análise.",
		Media: []catalog.MediaItem{
			{Kind: catalog.MediaVideo, URL: "https://v.example/1"},
			{Kind: catalog.MediaImage, URL: "https://i.example/1.jpg"},
			{Kind: catalog.MediaDocument, URL: "https://d.example/1.pdf"},
			{Kind: catalog.MediaYouTube, URL: "https://youtu.be/x"},
		},
		Translations: map[string]catalog.Translation{
			"en": {Name: "Miracle X"},
		},
	}
}

func TestBuildCard(t *testing.T) {
	card := BuildCard(sample(), "en")
	if card.Name != "Miracle X" {
		t.Errorf("name = %q", card.Name)
	}
	if !card.Investigating {
		t.Error("investigating flag lost")
	}
	if card.Image != "https://i.example/1.jpg" {
		t.Errorf("image should come from the first gallery image, got %q", card.Image)
	}

	withCover := sample()
	withCover.CoverImageURL = "https://c.example/cover.jpg"
	if got := BuildCard(withCover, "pt").Image; got != "https://c.example/cover.jpg" {
		t.Errorf("cover image must win, got %q", got)
	}
}

func TestBuildDetailGroupsMedia(t *testing.T) {
	d := BuildDetail(sample(), "pt", nil)
	if len(d.Images) != 1 || len(d.Videos) != 2 || len(d.Documents) != 1 {
		t.Fatalf("media groups = %d/%d/%d, want 1/2/1", len(d.Images), len(d.Videos), len(d.Documents))
	}
	// nil renderer escapes, never drops, the prose
	if !strings.Contains(string(d.History), "Contexto") {
		t.Errorf("history = %q", d.History)
	}
}

func TestBuildGrid(t *testing.T) {
	f := catalog.Filters{Search: "x", ShowInvestigating: true}
	g := BuildGrid([]catalog.Miracle{sample()}, true, errors.New("boom"), f, "pt")
	if len(g.Cards) != 1 {
		t.Fatalf("cards = %d", len(g.Cards))
	}
	if !g.Fetching || !g.Failed {
		t.Errorf("flags = fetching:%v failed:%v", g.Fetching, g.Failed)
	}
	if g.Query != "investigating=1&q=x" {
		t.Errorf("query = %q", g.Query)
	}
}
