package catalog

import (
	"strings"
	"time"
)

// Status classifies a miracle record by its ecclesiastical standing.
type Status string

const (
	StatusRecognized    Status = "recognized"
	StatusInvestigating Status = "investigating"
)

// MediaKind identifies the viewer a media item requires.
type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
	MediaYouTube  MediaKind = "youtube"
)

// TimelineEvent is one dated entry in a miracle's history.
type TimelineEvent struct {
	Year        string
	Title       string
	Description string
}

// ScientificExpert names a contributor to a scientific report.
type ScientificExpert struct {
	Name        string
	Institution string
	Role        string
}

// ScientificReport documents one scientific examination of a miracle.
type ScientificReport struct {
	Date             string
	Description      string
	Experts          []ScientificExpert
	OriginalExcerpts []string
}

// MediaItem is one gallery entry attached to a miracle.
type MediaItem struct {
	Kind        MediaKind
	URL         string
	Title       string
	Description string
	Category    string
}

// Reference is a bibliographic citation, optionally linked.
type Reference struct {
	Citation string
	URL      string
}

// Translation overlays the base-locale prose fields for one language.
// Blank fields fall through to the base locale.
type Translation struct {
	Name                  string
	HistoricalContext     string
	PhenomenonDescription string
	ChurchVerdict         string
	Summary               string
}

// Miracle is one catalog record. Prose fields hold the base locale (pt);
// Translations carries per-language overlays keyed by language code.
type Miracle struct {
	ID          string
	Name        string
	Country     string
	CountryFlag string
	City        string
	Century     string
	Year        string
	Status      Status

	HistoricalContext     string
	PhenomenonDescription string
	ChurchVerdict         string
	Summary               string
	CoverImageURL         string

	Timeline          []TimelineEvent
	ScientificReports []ScientificReport
	Media             []MediaItem
	References        []Reference
	Translations      map[string]Translation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocalizedFields is the prose projection of a miracle for one language.
// Every field is guaranteed non-empty whenever the base-locale value is.
type LocalizedFields struct {
	Name                  string
	HistoricalContext     string
	PhenomenonDescription string
	ChurchVerdict         string
	Summary               string
}

// Localized projects the record's prose fields for lang, falling back to the
// base locale wherever the overlay is absent or blank.
func (m Miracle) Localized(lang string) LocalizedFields {
	base := LocalizedFields{
		Name:                  m.Name,
		HistoricalContext:     m.HistoricalContext,
		PhenomenonDescription: m.PhenomenonDescription,
		ChurchVerdict:         m.ChurchVerdict,
		Summary:               m.Summary,
	}
	tr, ok := m.Translations[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		return base
	}
	return LocalizedFields{
		Name:                  overlay(tr.Name, base.Name),
		HistoricalContext:     overlay(tr.HistoricalContext, base.HistoricalContext),
		PhenomenonDescription: overlay(tr.PhenomenonDescription, base.PhenomenonDescription),
		ChurchVerdict:         overlay(tr.ChurchVerdict, base.ChurchVerdict),
		Summary:               overlay(tr.Summary, base.Summary),
	}
}

func overlay(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

// Facets lists the distinct filter values present in the catalog.
type Facets struct {
	Countries []string
	Centuries []string
}

// Stats summarizes the catalog for the home page strip.
type Stats struct {
	Total         int
	Recognized    int
	Investigating int
	Countries     int
}

// normalizeMediaKind maps backend aliases onto the supported viewer kinds.
func normalizeMediaKind(kind string) MediaKind {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "video":
		return MediaVideo
	case "youtube":
		return MediaYouTube
	case "document", "pdf":
		return MediaDocument
	default:
		return MediaImage
	}
}
