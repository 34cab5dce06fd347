package catalog

import (
	"strings"
	"time"
)

// Wire shapes for the backend's JSON. Responses are decoded into these tagged
// records at the network boundary and projected into domain types; views never
// see untyped JSON.

type miraclePayload struct {
	ID                    string                        `json:"id,omitempty"`
	Name                  string                        `json:"name"`
	Country               string                        `json:"country"`
	CountryFlag           string                        `json:"country_flag"`
	City                  string                        `json:"city"`
	Century               string                        `json:"century"`
	Year                  string                        `json:"year"`
	Status                string                        `json:"status"`
	HistoricalContext     string                        `json:"historical_context"`
	PhenomenonDescription string                        `json:"phenomenon_description"`
	ChurchVerdict         string                        `json:"church_verdict"`
	Summary               string                        `json:"summary"`
	CoverImageURL         string                        `json:"cover_image_url"`
	Timeline              []timelinePayload             `json:"timeline"`
	ScientificReports     []reportPayload               `json:"scientific_reports"`
	Media                 []mediaPayload                `json:"media"`
	References            []referencePayload            `json:"references"`
	Translations          map[string]translationPayload `json:"translations"`
	CreatedAt             string                        `json:"created_at,omitempty"`
	UpdatedAt             string                        `json:"updated_at,omitempty"`
}

type timelinePayload struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type reportPayload struct {
	Date             string          `json:"date"`
	Description      string          `json:"description"`
	Experts          []expertPayload `json:"experts"`
	OriginalExcerpts []string        `json:"original_excerpts"`
}

type expertPayload struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Role        string `json:"role"`
}

type mediaPayload struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type referencePayload struct {
	Citation string `json:"citation"`
	URL      string `json:"url"`
}

type translationPayload struct {
	Name                  string `json:"name"`
	HistoricalContext     string `json:"historical_context"`
	PhenomenonDescription string `json:"phenomenon_description"`
	ChurchVerdict         string `json:"church_verdict"`
	Summary               string `json:"summary"`
}

type facetsPayload struct {
	Countries []string `json:"countries"`
	Centuries []string `json:"centuries"`
}

type statsPayload struct {
	Total         int `json:"total"`
	Recognized    int `json:"recognized"`
	Investigating int `json:"investigating"`
	Countries     int `json:"countries"`
}

type tokenPayload struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

type importReportPayload struct {
	ImportedCount int `json:"imported_count"`
	ErrorCount    int `json:"error_count"`
	Imported      []struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	} `json:"imported"`
	Errors []struct {
		Index int    `json:"index"`
		Name  string `json:"name"`
		Error string `json:"error"`
	} `json:"errors"`
}

func (p miraclePayload) toMiracle() Miracle {
	m := Miracle{
		ID:                    strings.TrimSpace(p.ID),
		Name:                  strings.TrimSpace(p.Name),
		Country:               strings.TrimSpace(p.Country),
		CountryFlag:           strings.TrimSpace(p.CountryFlag),
		City:                  strings.TrimSpace(p.City),
		Century:               strings.TrimSpace(p.Century),
		Year:                  strings.TrimSpace(p.Year),
		Status:                normalizeStatus(p.Status),
		HistoricalContext:     p.HistoricalContext,
		PhenomenonDescription: p.PhenomenonDescription,
		ChurchVerdict:         p.ChurchVerdict,
		Summary:               p.Summary,
		CoverImageURL:         strings.TrimSpace(p.CoverImageURL),
		CreatedAt:             parseTime(p.CreatedAt),
		UpdatedAt:             parseTime(p.UpdatedAt),
	}
	for _, t := range p.Timeline {
		m.Timeline = append(m.Timeline, TimelineEvent(t))
	}
	for _, r := range p.ScientificReports {
		report := ScientificReport{
			Date:             r.Date,
			Description:      r.Description,
			OriginalExcerpts: r.OriginalExcerpts,
		}
		for _, e := range r.Experts {
			report.Experts = append(report.Experts, ScientificExpert(e))
		}
		m.ScientificReports = append(m.ScientificReports, report)
	}
	for _, item := range p.Media {
		m.Media = append(m.Media, MediaItem{
			Kind:        normalizeMediaKind(item.Type),
			URL:         strings.TrimSpace(item.URL),
			Title:       item.Title,
			Description: item.Description,
			Category:    strings.TrimSpace(item.Category),
		})
	}
	for _, ref := range p.References {
		m.References = append(m.References, Reference{
			Citation: ref.Citation,
			URL:      strings.TrimSpace(ref.URL),
		})
	}
	if len(p.Translations) > 0 {
		m.Translations = make(map[string]Translation, len(p.Translations))
		for lang, tr := range p.Translations {
			m.Translations[strings.ToLower(strings.TrimSpace(lang))] = Translation(tr)
		}
	}
	return m
}

// fromMiracle serializes the editable fields for create and update calls.
// Identifier and timestamps are the backend's to assign.
func fromMiracle(m Miracle) miraclePayload {
	p := miraclePayload{
		Name:                  strings.TrimSpace(m.Name),
		Country:               strings.TrimSpace(m.Country),
		CountryFlag:           strings.TrimSpace(m.CountryFlag),
		City:                  strings.TrimSpace(m.City),
		Century:               strings.TrimSpace(m.Century),
		Year:                  strings.TrimSpace(m.Year),
		Status:                string(m.Status),
		HistoricalContext:     m.HistoricalContext,
		PhenomenonDescription: m.PhenomenonDescription,
		ChurchVerdict:         m.ChurchVerdict,
		Summary:               m.Summary,
		CoverImageURL:         strings.TrimSpace(m.CoverImageURL),
	}
	for _, t := range m.Timeline {
		p.Timeline = append(p.Timeline, timelinePayload(t))
	}
	for _, r := range m.ScientificReports {
		rp := reportPayload{
			Date:             r.Date,
			Description:      r.Description,
			OriginalExcerpts: r.OriginalExcerpts,
		}
		for _, e := range r.Experts {
			rp.Experts = append(rp.Experts, expertPayload(e))
		}
		p.ScientificReports = append(p.ScientificReports, rp)
	}
	for _, item := range m.Media {
		p.Media = append(p.Media, mediaPayload{
			Type:        string(item.Kind),
			URL:         strings.TrimSpace(item.URL),
			Title:       item.Title,
			Description: item.Description,
			Category:    strings.TrimSpace(item.Category),
		})
	}
	for _, ref := range m.References {
		p.References = append(p.References, referencePayload{
			Citation: ref.Citation,
			URL:      strings.TrimSpace(ref.URL),
		})
	}
	if len(m.Translations) > 0 {
		p.Translations = make(map[string]translationPayload, len(m.Translations))
		for lang, tr := range m.Translations {
			p.Translations[strings.ToLower(strings.TrimSpace(lang))] = translationPayload(tr)
		}
	}
	return p
}

func (p importReportPayload) toReport() ImportReport {
	report := ImportReport{}
	for _, item := range p.Imported {
		report.Imported = append(report.Imported, ImportedItem{Name: item.Name, ID: item.ID})
	}
	for _, item := range p.Errors {
		report.Errors = append(report.Errors, ImportError{Index: item.Index, Name: item.Name, Error: item.Error})
	}
	// Counts always reflect the list lengths, whatever the backend sent.
	report.ImportedCount = len(report.Imported)
	report.ErrorCount = len(report.Errors)
	return report
}

func normalizeStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StatusInvestigating):
		return StatusInvestigating
	default:
		return StatusRecognized
	}
}

func parseTime(val string) time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}
	}
	// backends emit RFC 3339 or a zoneless isoformat
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts
		}
	}
	return time.Time{}
}
