package catalog

import (
	"context"
	"sync"
)

// QueryService drives the browsing view's result set. Every List call is
// tagged with a monotonically increasing sequence number; only the most
// recently issued call may update the authoritative result set, so a slow
// response for a superseded query can never clobber a newer one
// (last-request-wins, not last-response-wins). Stale resolutions are absorbed
// here and never surface to callers.
type QueryService struct {
	client *Client

	mu       sync.Mutex
	seq      uint64
	fetching bool
	results  []Miracle
	err      error
}

// NewQueryService builds a query service backed by client.
func NewQueryService(client *Client) *QueryService {
	return &QueryService{client: client}
}

// Bind subscribes the service to store so every filter mutation re-issues the
// query. Fetches run asynchronously; staleness is handled by the sequence rule.
func (s *QueryService) Bind(ctx context.Context, store *FilterStore) {
	store.Subscribe(func(f Filters) {
		go func() {
			_, _ = s.List(ctx, f)
		}()
	})
}

// List issues one backend query for f and returns that call's own response.
// The service's displayed state (Results, Err, Fetching) only reflects the
// call if no newer call was issued meanwhile.
func (s *QueryService) List(ctx context.Context, f Filters) ([]Miracle, error) {
	s.mu.Lock()
	s.seq++
	token := s.seq
	s.fetching = true
	s.mu.Unlock()

	items, err := s.client.List(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		// Superseded while in flight; drop the state update.
		return items, err
	}
	s.fetching = false
	if err != nil {
		// Keep the last good result set; stale-but-valid beats a blank view.
		s.err = err
		return nil, err
	}
	s.err = nil
	s.results = items
	return items, nil
}

// Results returns a copy of the authoritative result set.
func (s *QueryService) Results() []Miracle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Miracle, len(s.results))
	copy(out, s.results)
	return out
}

// Fetching reports whether the newest issued query is still unresolved.
func (s *QueryService) Fetching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetching
}

// Err returns the failure outcome of the newest resolved query, if any.
func (s *QueryService) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
