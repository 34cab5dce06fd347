package handlers

import (
	"html/template"
	"strings"

	"milagres.org/milagres-web/internal/catalog"
	"milagres.org/milagres-web/internal/format"
)

// MiracleCard is the grid entry for one miracle.
type MiracleCard struct {
	ID            string
	Name          string
	City          string
	Country       string
	CountryFlag   string
	Century       string
	Year          string
	Summary       string
	Image         string
	Investigating bool
}

// GridData is the view model for the miracle grid fragment. The full
// home page embeds it so the initial render and the htmx refresh share
// one template.
type GridData struct {
	Lang     string
	Cards    []MiracleCard
	Fetching bool
	Failed   bool
	Query    string // current filter query string, for HX-Push-Url
}

// HomeData is the view model for the landing page.
type HomeData struct {
	PageData
	Filters catalog.Filters
	Facets  catalog.Facets
	Stats   catalog.Stats
	Grid    GridData
}

// BuildCard projects a miracle into its grid card in the given language.
func BuildCard(m catalog.Miracle, lang string) MiracleCard {
	loc := m.Localized(lang)
	image := m.CoverImageURL
	if image == "" {
		for _, item := range m.Media {
			if item.Kind == catalog.MediaImage {
				image = item.URL
				break
			}
		}
	}
	return MiracleCard{
		ID:            m.ID,
		Name:          loc.Name,
		City:          m.City,
		Country:       m.Country,
		CountryFlag:   m.CountryFlag,
		Century:       m.Century,
		Year:          m.Year,
		Summary:       loc.Summary,
		Image:         image,
		Investigating: m.Status == catalog.StatusInvestigating,
	}
}

// BuildGrid projects the query service's current state into the grid fragment.
func BuildGrid(miracles []catalog.Miracle, fetching bool, err error, f catalog.Filters, lang string) GridData {
	cards := make([]MiracleCard, 0, len(miracles))
	for _, m := range miracles {
		cards = append(cards, BuildCard(m, lang))
	}
	return GridData{
		Lang:     lang,
		Cards:    cards,
		Fetching: fetching,
		Failed:   err != nil,
		Query:    f.PageQuery().Encode(),
	}
}

// DetailData is the view model for one miracle's page.
type DetailData struct {
	PageData
	Card       MiracleCard
	History    template.HTML
	Phenomenon template.HTML
	Verdict    template.HTML
	Timeline   []catalog.TimelineEvent
	Reports    []ReportRow
	Images     []catalog.MediaItem
	Videos     []catalog.MediaItem
	Documents  []catalog.MediaItem
	References []catalog.Reference
	Updated    string
}

// ReportRow is one scientific report with its experts.
type ReportRow struct {
	Date        string
	Description string
	Experts     []catalog.ScientificExpert
	Excerpts    []string
}

// BuildDetail projects a full miracle record for the detail page.
// mdHTML renders localized prose; a nil renderer leaves plain text escaped.
func BuildDetail(m catalog.Miracle, lang string, mdHTML func(string) template.HTML) DetailData {
	loc := m.Localized(lang)
	render := mdHTML
	if render == nil {
		render = func(s string) template.HTML {
			return template.HTML(template.HTMLEscapeString(s))
		}
	}
	d := DetailData{
		Card:       BuildCard(m, lang),
		History:    render(loc.HistoricalContext),
		Phenomenon: render(loc.PhenomenonDescription),
		Verdict:    render(loc.ChurchVerdict),
		Timeline:   m.Timeline,
		References: m.References,
		Updated:    format.Date(m.UpdatedAt, lang),
	}
	for _, rep := range m.ScientificReports {
		d.Reports = append(d.Reports, ReportRow{
			Date:        strings.TrimSpace(rep.Date),
			Description: rep.Description,
			Experts:     rep.Experts,
			Excerpts:    rep.OriginalExcerpts,
		})
	}
	for _, item := range m.Media {
		switch item.Kind {
		case catalog.MediaVideo, catalog.MediaYouTube:
			d.Videos = append(d.Videos, item)
		case catalog.MediaDocument:
			d.Documents = append(d.Documents, item)
		default:
			d.Images = append(d.Images, item)
		}
	}
	return d
}
