package catalog

import (
	"context"
	"sync"
	"time"
)

const defaultOverviewTTL = 2 * time.Minute

// Overview serves the facets and stats strips through a short-lived cache.
// Both are filter-independent pass-through fetches with no staleness concern
// beyond the TTL, so there is no sequencing here.
type Overview struct {
	client *Client
	ttl    time.Duration

	mu          sync.Mutex
	facets      Facets
	facetsUntil time.Time
	stats       Stats
	statsUntil  time.Time
}

// NewOverview builds an overview cache backed by client. ttl <= 0 selects the
// default.
func NewOverview(client *Client, ttl time.Duration) *Overview {
	if ttl <= 0 {
		ttl = defaultOverviewTTL
	}
	return &Overview{client: client, ttl: ttl}
}

// Facets returns the cached facet lists, refreshing them when expired.
// On refresh failure the previous value is served alongside the error.
func (o *Overview) Facets(ctx context.Context) (Facets, error) {
	o.mu.Lock()
	if time.Now().Before(o.facetsUntil) {
		cached := o.facets
		o.mu.Unlock()
		return cached, nil
	}
	o.mu.Unlock()

	fresh, err := o.client.Facets(ctx)
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		return o.facets, err
	}
	o.facets = fresh
	o.facetsUntil = time.Now().Add(o.ttl)
	return fresh, nil
}

// Stats returns the cached counters, refreshing them when expired.
func (o *Overview) Stats(ctx context.Context) (Stats, error) {
	o.mu.Lock()
	if time.Now().Before(o.statsUntil) {
		cached := o.stats
		o.mu.Unlock()
		return cached, nil
	}
	o.mu.Unlock()

	fresh, err := o.client.Stats(ctx)
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		return o.stats, err
	}
	o.stats = fresh
	o.statsUntil = time.Now().Add(o.ttl)
	return fresh, nil
}
