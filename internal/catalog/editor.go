package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EditorSections carries the structured parts of one record as JSON text,
// the same wire shapes the bulk-import template documents. The admin form
// edits these in textareas; scalar fields stay regular inputs.
type EditorSections struct {
	Timeline   string
	Reports    string
	Media      string
	References string
}

// SectionError identifies which editor section failed to decode.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("catalog: section %q: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

// SectionsFromMiracle renders m's structured fields as indented JSON for the
// form textareas. An empty section renders as an empty string, not "null".
func SectionsFromMiracle(m Miracle) EditorSections {
	p := fromMiracle(m)
	return EditorSections{
		Timeline:   marshalSection(p.Timeline),
		Reports:    marshalSection(p.ScientificReports),
		Media:      marshalSection(p.Media),
		References: marshalSection(p.References),
	}
}

func marshalSection[T any](items []T) string {
	if len(items) == 0 {
		return ""
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// Apply decodes each section into m, replacing the matching slice. A blank
// section clears it. Decode failures name the offending section.
func (s EditorSections) Apply(m *Miracle) error {
	m.Timeline = nil
	if txt := strings.TrimSpace(s.Timeline); txt != "" {
		var items []timelinePayload
		if err := json.Unmarshal([]byte(txt), &items); err != nil {
			return &SectionError{Section: "timeline", Err: err}
		}
		for _, it := range items {
			m.Timeline = append(m.Timeline, TimelineEvent(it))
		}
	}

	m.ScientificReports = nil
	if txt := strings.TrimSpace(s.Reports); txt != "" {
		var items []reportPayload
		if err := json.Unmarshal([]byte(txt), &items); err != nil {
			return &SectionError{Section: "reports", Err: err}
		}
		for _, it := range items {
			report := ScientificReport{
				Date:             it.Date,
				Description:      it.Description,
				OriginalExcerpts: it.OriginalExcerpts,
			}
			for _, e := range it.Experts {
				report.Experts = append(report.Experts, ScientificExpert(e))
			}
			m.ScientificReports = append(m.ScientificReports, report)
		}
	}

	m.Media = nil
	if txt := strings.TrimSpace(s.Media); txt != "" {
		var items []mediaPayload
		if err := json.Unmarshal([]byte(txt), &items); err != nil {
			return &SectionError{Section: "media", Err: err}
		}
		for _, it := range items {
			m.Media = append(m.Media, MediaItem{
				Kind:        normalizeMediaKind(it.Type),
				URL:         strings.TrimSpace(it.URL),
				Title:       it.Title,
				Description: it.Description,
				Category:    strings.TrimSpace(it.Category),
			})
		}
	}

	m.References = nil
	if txt := strings.TrimSpace(s.References); txt != "" {
		var items []referencePayload
		if err := json.Unmarshal([]byte(txt), &items); err != nil {
			return &SectionError{Section: "references", Err: err}
		}
		for _, it := range items {
			m.References = append(m.References, Reference{
				Citation: it.Citation,
				URL:      strings.TrimSpace(it.URL),
			})
		}
	}
	return nil
}
