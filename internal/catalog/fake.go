package catalog

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Sample records served when no backend is configured, so the site renders
// with real-looking content in local dev and tests.
var sampleMiracles = []Miracle{
	{
		ID:                    "mir_lanciano",
		Name:                  "Milagre de Lanciano",
		Country:               "Itália",
		CountryFlag:           "🇮🇹",
		City:                  "Lanciano",
		Century:               "VIII",
		Year:                  "750",
		Status:                StatusRecognized,
		HistoricalContext:     "Durante a celebração da missa em Lanciano, um monge basiliano duvidou da presença real de Cristo na Eucaristia.",
		PhenomenonDescription: "A hóstia se transformou em carne e o vinho em sangue, preservados até hoje na igreja de São Francisco.",
		ChurchVerdict:         "Reconhecido oficialmente pela Igreja Católica.",
		Timeline: []TimelineEvent{
			{Year: "750", Title: "Ocorrência do milagre", Description: "Um monge basiliano celebrava a missa quando ocorreu a transformação."},
			{Year: "1970", Title: "Investigação científica", Description: "O Prof. Odoardo Linoli realizou análises histológicas e bioquímicas."},
		},
		ScientificReports: []ScientificReport{
			{
				Date:        "1970-1971",
				Description: "Análise histológica e química das relíquias.",
				Experts: []ScientificExpert{
					{Name: "Prof. Odoardo Linoli", Institution: "Universidade de Siena", Role: "Anatomopatologista"},
				},
				OriginalExcerpts: []string{"A carne é tecido miocárdico humano, do tipo AB."},
			},
		},
		Media: []MediaItem{
			{Kind: MediaImage, URL: "https://example.com/lanciano.jpg", Title: "Relíquia de Lanciano", Category: "current"},
		},
		References: []Reference{
			{Citation: "LINOLI, Odoardo. Ricerche istologiche, immunologiche e biochimiche sulla carne e sul sangue del Miracolo Eucaristico di Lanciano. 1971."},
		},
		Translations: map[string]Translation{
			"en": {
				Name:                  "Miracle of Lanciano",
				HistoricalContext:     "During the celebration of mass in Lanciano, a Basilian monk doubted the real presence of Christ in the Eucharist.",
				PhenomenonDescription: "The host transformed into flesh and the wine into blood, preserved to this day in the church of Saint Francis.",
				ChurchVerdict:         "Officially recognized by the Catholic Church.",
			},
			"es": {
				Name:                  "Milagro de Lanciano",
				HistoricalContext:     "Durante la celebración de la misa en Lanciano, un monje basiliano dudó de la presencia real de Cristo en la Eucaristía.",
				PhenomenonDescription: "La hostia se transformó en carne y el vino en sangre, conservados hasta hoy en la iglesia de San Francisco.",
				ChurchVerdict:         "Reconocido oficialmente por la Iglesia Católica.",
			},
		},
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:                    "mir_santarem",
		Name:                  "Milagre de Santarém",
		Country:               "Portugal",
		CountryFlag:           "🇵🇹",
		City:                  "Santarém",
		Century:               "XIII",
		Year:                  "1247",
		Status:                StatusRecognized,
		HistoricalContext:     "Uma mulher levou uma hóstia consagrada para fora da igreja por conselho de uma feiticeira.",
		PhenomenonDescription: "A hóstia começou a sangrar e emitir luz, sendo devolvida à igreja de Santo Estêvão.",
		ChurchVerdict:         "Reconhecido; a relíquia é venerada na Igreja do Santíssimo Milagre.",
		Translations: map[string]Translation{
			"en": {
				Name:                  "Miracle of Santarém",
				HistoricalContext:     "A woman took a consecrated host out of the church on the advice of a sorceress.",
				PhenomenonDescription: "The host began to bleed and emit light, and was returned to the church of Saint Stephen.",
				ChurchVerdict:         "Recognized; the relic is venerated in the Church of the Holy Miracle.",
			},
		},
		CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:                    "mir_buenos_aires",
		Name:                  "Milagre de Buenos Aires",
		Country:               "Argentina",
		CountryFlag:           "🇦🇷",
		City:                  "Buenos Aires",
		Century:               "XX",
		Year:                  "1996",
		Status:                StatusRecognized,
		HistoricalContext:     "Uma hóstia abandonada foi colocada em água para se dissolver e dias depois apresentava aspecto de tecido.",
		PhenomenonDescription: "Análises apontaram tecido cardíaco humano com sinais de sofrimento.",
		ChurchVerdict:         "Investigação conduzida sob o então arcebispo Jorge Bergoglio; culto aprovado.",
		ScientificReports: []ScientificReport{
			{
				Date:        "1999",
				Description: "Análise laboratorial do fragmento.",
				Experts: []ScientificExpert{
					{Name: "Dr. Ricardo Castañón", Institution: "Grupo Internacional para a Paz"},
				},
			},
		},
		CreatedAt: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:                    "mir_guadalajara",
		Name:                  "Milagre de Guadalajara",
		Country:               "México",
		CountryFlag:           "🇲🇽",
		City:                  "Guadalajara",
		Century:               "XXI",
		Year:                  "2013",
		Status:                StatusInvestigating,
		HistoricalContext:     "Fiéis relataram alterações visíveis em uma hóstia exposta para adoração.",
		PhenomenonDescription: "O fenômeno segue sob análise da diocese local.",
		ChurchVerdict:         "Em investigação.",
		CreatedAt:             time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		UpdatedAt:             time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
	},
}

func fakeList(f Filters) []Miracle {
	out := make([]Miracle, 0, len(sampleMiracles))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, m := range sampleMiracles {
		if !f.ShowInvestigating && m.Status != StatusRecognized {
			continue
		}
		if f.Country != "" && m.Country != f.Country {
			continue
		}
		if f.Century != "" && m.Century != f.Century {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func fakeGet(id string) (Miracle, error) {
	for _, m := range sampleMiracles {
		if m.ID == id {
			return m, nil
		}
	}
	return Miracle{}, ErrNotFound
}

func fakeFacets() Facets {
	countries := map[string]struct{}{}
	centuries := map[string]struct{}{}
	for _, m := range sampleMiracles {
		countries[m.Country] = struct{}{}
		centuries[m.Century] = struct{}{}
	}
	f := Facets{}
	for c := range countries {
		f.Countries = append(f.Countries, c)
	}
	for c := range centuries {
		f.Centuries = append(f.Centuries, c)
	}
	sort.Strings(f.Countries)
	sort.Strings(f.Centuries)
	return f
}

func fakeStats() Stats {
	s := Stats{Total: len(sampleMiracles)}
	countries := map[string]struct{}{}
	for _, m := range sampleMiracles {
		countries[m.Country] = struct{}{}
		switch m.Status {
		case StatusInvestigating:
			s.Investigating++
		default:
			s.Recognized++
		}
	}
	s.Countries = len(countries)
	return s
}

func fakeTemplate() []byte {
	doc := map[string]any{
		"miracles": []map[string]any{
			{
				"name":                   "Milagre de Lanciano",
				"country":                "Itália",
				"country_flag":           "🇮🇹",
				"city":                   "Lanciano",
				"century":                "VIII",
				"year":                   "750",
				"status":                 "recognized",
				"historical_context":     "Durante a celebração da missa em Lanciano...",
				"phenomenon_description": "A hóstia se transformou em carne e o vinho em sangue...",
				"church_verdict":         "Reconhecido oficialmente pela Igreja Católica",
				"timeline": []map[string]string{
					{"year": "750", "title": "Ocorrência do milagre", "description": "Um monge basiliano celebrava a missa..."},
				},
				"scientific_reports": []map[string]any{
					{
						"date":        "1970-1971",
						"description": "Análise histológica e química",
						"experts": []map[string]string{
							{"name": "Prof. Odoardo Linoli", "institution": "Universidade de Siena", "role": "Anatomopatologista"},
						},
						"original_excerpts": []string{"A carne é tecido miocárdico humano..."},
					},
				},
				"media": []map[string]string{
					{"type": "image", "url": "https://example.com/image.jpg", "title": "Relíquia de Lanciano", "category": "current"},
				},
				"references": []map[string]any{
					{"citation": "LINOLI, Odoardo. Ricerche istologiche... 1971.", "url": nil},
				},
				"translations": map[string]map[string]string{
					"en": {
						"name":                   "Miracle of Lanciano",
						"historical_context":     "During the celebration of mass in Lanciano...",
						"phenomenon_description": "The host transformed into flesh and the wine into blood...",
						"church_verdict":         "Officially recognized by the Catholic Church",
					},
				},
			},
		},
	}
	b, _ := json.MarshalIndent(doc, "", "  ")
	return b
}

func fakeImport(batch ImportBatch) ImportReport {
	report := ImportReport{}
	for i, raw := range batch.Miracles {
		var probe struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil || strings.TrimSpace(probe.Name) == "" {
			report.Errors = append(report.Errors, ImportError{Index: i, Name: probe.Name, Error: "missing required field: name"})
			continue
		}
		report.Imported = append(report.Imported, ImportedItem{Name: probe.Name, ID: "mir_" + strings.ToLower(ulid.Make().String())})
	}
	report.ImportedCount = len(report.Imported)
	report.ErrorCount = len(report.Errors)
	return report
}

// Offline writes echo the would-be result without persisting, like fakeDelete.
func fakeCreate(m Miracle) Miracle {
	now := time.Now().UTC()
	m.ID = "mir_" + strings.ToLower(ulid.Make().String())
	m.CreatedAt = now
	m.UpdatedAt = now
	return m
}

func fakeUpdate(id string, m Miracle) (Miracle, error) {
	prev, err := fakeGet(id)
	if err != nil {
		return Miracle{}, err
	}
	m.ID = prev.ID
	m.CreatedAt = prev.CreatedAt
	m.UpdatedAt = time.Now().UTC()
	return m, nil
}

func fakeLogin(email string) (Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Credentials{}, ErrInvalidCredentials
	}
	return Credentials{
		Token:    "demo-" + strings.ToLower(ulid.Make().String()),
		UserID:   "user_demo",
		UserName: "Demo Admin",
		Email:    email,
	}, nil
}

func fakeDelete(id string) error {
	for _, m := range sampleMiracles {
		if m.ID == id {
			return nil
		}
	}
	return ErrNotFound
}

func fakeDeleteByCentury(century string) int {
	n := 0
	for _, m := range sampleMiracles {
		if m.Century == century {
			n++
		}
	}
	return n
}
