package handlers

import "milagres.org/milagres-web/internal/catalog"

// LoginData is the view model for the admin login form.
type LoginData struct {
	PageData
	Email string
	Next  string
	Error string
}

// DashboardData is the view model for the admin catalog table.
type DashboardData struct {
	PageData
	Rows      []MiracleCard
	Stats     catalog.Stats
	Centuries []string
	Deleted   int // records removed by the last bulk delete, when > 0
	Saved     bool
	LoadErr   bool
}

// TranslationForm is one language overlay as submitted by the admin form.
type TranslationForm struct {
	Name                  string
	HistoricalContext     string
	PhenomenonDescription string
	ChurchVerdict         string
	Summary               string
}

// MiracleForm mirrors the create/edit form fields. Scalar fields are plain
// inputs; the structured sections travel as JSON text.
type MiracleForm struct {
	Name                  string
	Country               string
	CountryFlag           string
	City                  string
	Century               string
	Year                  string
	Status                string
	HistoricalContext     string
	PhenomenonDescription string
	ChurchVerdict         string
	Summary               string
	CoverImageURL         string
	Sections              catalog.EditorSections
	EN                    TranslationForm
	ES                    TranslationForm
}

// FormData is the view model for the miracle create/edit page. A blank ID
// means a new record.
type FormData struct {
	PageData
	ID     string
	Form   MiracleForm
	Errors map[string]string
	Failed bool // the backend rejected the save
}

// FormFromMiracle fills the edit form from an existing record.
func FormFromMiracle(m catalog.Miracle) MiracleForm {
	f := MiracleForm{
		Name:                  m.Name,
		Country:               m.Country,
		CountryFlag:           m.CountryFlag,
		City:                  m.City,
		Century:               m.Century,
		Year:                  m.Year,
		Status:                string(m.Status),
		HistoricalContext:     m.HistoricalContext,
		PhenomenonDescription: m.PhenomenonDescription,
		ChurchVerdict:         m.ChurchVerdict,
		Summary:               m.Summary,
		CoverImageURL:         m.CoverImageURL,
		Sections:              catalog.SectionsFromMiracle(m),
	}
	if tr, ok := m.Translations["en"]; ok {
		f.EN = TranslationForm(tr)
	}
	if tr, ok := m.Translations["es"]; ok {
		f.ES = TranslationForm(tr)
	}
	return f
}

// ImportData is the view model for the bulk import page: the form, a local
// validation failure, or the backend's per-item report.
type ImportData struct {
	PageData
	Raw    string
	Error  string
	Report *catalog.ImportReport
}
