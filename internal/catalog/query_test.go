package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// listServer serves /api/miracles with per-request control: a request whose
// search term has a registered gate blocks until that gate is closed.
type listServer struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func newListServer() *listServer {
	return &listServer{gates: map[string]chan struct{}{}}
}

func (s *listServer) hold(search string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.gates[search] = ch
	return ch
}

func (s *listServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		s.mu.Lock()
		gate := s.gates[search]
		s.mu.Unlock()
		if gate != nil {
			<-gate
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "mir_" + search, "name": search},
		})
	})
}

func TestQueryServiceLastRequestWins(t *testing.T) {
	backend := newListServer()
	gateA := backend.hold("slow")
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	svc := NewQueryService(NewClient(srv.URL, 0))
	ctx := context.Background()

	aDone := make(chan []Miracle, 1)
	go func() {
		items, err := svc.List(ctx, Filters{Search: "slow"})
		if err != nil {
			t.Errorf("slow call failed: %v", err)
		}
		aDone <- items
	}()

	// wait for the slow request to be in flight before issuing the next one
	waitFor(t, func() bool { return svc.Fetching() })

	fast, err := svc.List(ctx, Filters{Search: "fast"})
	if err != nil {
		t.Fatalf("fast call failed: %v", err)
	}
	if len(fast) != 1 || fast[0].ID != "mir_fast" {
		t.Fatalf("fast call returned %+v", fast)
	}
	if got := svc.Results(); len(got) != 1 || got[0].ID != "mir_fast" {
		t.Fatalf("Results() = %+v, want fast items", got)
	}

	// let the superseded response arrive; it must not clobber the newer one
	close(gateA)
	slow := <-aDone
	if len(slow) != 1 || slow[0].ID != "mir_slow" {
		t.Fatalf("slow caller should still get its own response, got %+v", slow)
	}
	if got := svc.Results(); got[0].ID != "mir_fast" {
		t.Fatalf("stale response overwrote results: %+v", got)
	}
	if svc.Fetching() {
		t.Fatal("fetching should stay false once the newest call has resolved")
	}
}

func TestQueryServiceErrorKeepsLastGoodResults(t *testing.T) {
	fail := false
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		f := fail
		mu.Unlock()
		if f {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": "mir_ok", "name": "ok"}})
	}))
	defer srv.Close()

	svc := NewQueryService(NewClient(srv.URL, 0))
	ctx := context.Background()

	if _, err := svc.List(ctx, Filters{}); err != nil {
		t.Fatalf("seed call failed: %v", err)
	}

	mu.Lock()
	fail = true
	mu.Unlock()
	if _, err := svc.List(ctx, Filters{Search: "x"}); err == nil {
		t.Fatal("expected an error from the failing backend")
	}
	if svc.Err() == nil {
		t.Fatal("Err() should report the failure")
	}
	if got := svc.Results(); len(got) != 1 || got[0].ID != "mir_ok" {
		t.Fatalf("failure must keep the last good results, got %+v", got)
	}

	mu.Lock()
	fail = false
	mu.Unlock()
	if _, err := svc.List(ctx, Filters{}); err != nil {
		t.Fatalf("recovery call failed: %v", err)
	}
	if svc.Err() != nil {
		t.Fatalf("Err() should clear on success, got %v", svc.Err())
	}
}

func TestQueryServiceBind(t *testing.T) {
	svc := NewQueryService(NewClient("", 0)) // offline sample data
	store := NewFilterStore(Filters{})
	svc.Bind(context.Background(), store)

	store.SetSearch("lanciano")

	waitFor(t, func() bool {
		items := svc.Results()
		return len(items) == 1 && items[0].ID == "mir_lanciano"
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}
