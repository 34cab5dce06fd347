package catalog

import (
	"net/url"
	"strings"
	"sync"
)

// Filters is the browsing view's filter state. Empty Country/Century mean
// "any"; the wildcard is encoded as absence, never as a literal value.
type Filters struct {
	Search            string
	Country           string
	Century           string
	ShowInvestigating bool
}

// Query derives the backend query parameters. The mapping is pure: identical
// filters always produce identical values. The status constraint is pinned to
// "recognized" while the investigating toggle is off and omitted entirely when
// it is on.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	if c := strings.TrimSpace(f.Country); c != "" {
		q.Set("country", c)
	}
	if c := strings.TrimSpace(f.Century); c != "" {
		q.Set("century", c)
	}
	if !f.ShowInvestigating {
		q.Set("status", string(StatusRecognized))
	}
	return q
}

// FilterStore holds the current filter state and notifies subscribers on every
// mutation. The browsing view is the sole writer; the query service observes.
type FilterStore struct {
	mu      sync.Mutex
	current Filters
	subs    []func(Filters)
}

// NewFilterStore builds a store seeded with initial.
func NewFilterStore(initial Filters) *FilterStore {
	return &FilterStore{current: initial}
}

// Current returns a snapshot of the filter state.
func (s *FilterStore) Current() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn to run after every mutation with the new snapshot.
func (s *FilterStore) Subscribe(fn func(Filters)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// SetSearch replaces the free-text search term.
func (s *FilterStore) SetSearch(v string) {
	s.mutate(func(f *Filters) { f.Search = v })
}

// SetCountry replaces the country constraint; empty means any.
func (s *FilterStore) SetCountry(v string) {
	s.mutate(func(f *Filters) { f.Country = v })
}

// SetCentury replaces the century constraint; empty means any.
func (s *FilterStore) SetCentury(v string) {
	s.mutate(func(f *Filters) { f.Century = v })
}

// SetShowInvestigating toggles inclusion of under-investigation records.
func (s *FilterStore) SetShowInvestigating(v bool) {
	s.mutate(func(f *Filters) { f.ShowInvestigating = v })
}

func (s *FilterStore) mutate(apply func(*Filters)) {
	s.mu.Lock()
	apply(&s.current)
	snapshot := s.current
	subs := make([]func(Filters), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// FiltersFromQuery restores filter state from page query parameters so that
// filtered views stay linkable.
func FiltersFromQuery(q url.Values) Filters {
	return Filters{
		Search:            strings.TrimSpace(q.Get("q")),
		Country:           strings.TrimSpace(q.Get("country")),
		Century:           strings.TrimSpace(q.Get("century")),
		ShowInvestigating: q.Get("investigating") == "1",
	}
}

// PageQuery is the inverse of FiltersFromQuery, used to build canonical links.
func (f Filters) PageQuery() url.Values {
	q := url.Values{}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("q", s)
	}
	if c := strings.TrimSpace(f.Country); c != "" {
		q.Set("country", c)
	}
	if c := strings.TrimSpace(f.Century); c != "" {
		q.Set("century", c)
	}
	if f.ShowInvestigating {
		q.Set("investigating", "1")
	}
	return q
}
