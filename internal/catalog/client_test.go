package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientListSendsFilterQuery(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/miracles" {
			t.Errorf("path = %q, want /api/miracles", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "mir_1", "name": "Lanciano", "status": "recognized", "century": "VIII"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	items, err := c.List(context.Background(), Filters{Search: "lan", Century: "VIII"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].ID != "mir_1" {
		t.Fatalf("items = %+v", items)
	}
	if gotQuery["search"][0] != "lan" || gotQuery["century"][0] != "VIII" || gotQuery["status"][0] != "recognized" {
		t.Errorf("query = %v", gotQuery)
	}
}

func TestClientGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if _, err := c.Get(context.Background(), "mir_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// a blank id never reaches the network
	if _, err := c.Get(context.Background(), "  "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("blank id err = %v, want ErrNotFound", err)
	}
}

func TestClientServerErrorIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.List(context.Background(), Filters{})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
	if te.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", te.Status)
	}
}

func TestClientMalformedBodyIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	var te *TransportError
	if _, err := c.List(context.Background(), Filters{}); !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
}

func TestClientUnreachableBackend(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 0) // nothing listens here
	var te *TransportError
	if _, err := c.List(context.Background(), Filters{}); !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
}

func TestClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok123",
			"user":         map[string]string{"id": "u1", "name": "Admin", "email": body["email"]},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	creds, err := c.Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if creds.Token != "tok123" || creds.UserID != "u1" {
		t.Fatalf("creds = %+v", creds)
	}

	if _, err := c.Login(context.Background(), "a@b.c", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestClientBulkImportHeaders(t *testing.T) {
	var auth, idem string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		idem = r.Header.Get("Idempotency-Key")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"imported_count": 0, "error_count": 0,
			"imported": []any{}, "errors": []any{},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	batch := ImportBatch{Miracles: []json.RawMessage{json.RawMessage(`{"name":"x"}`)}}
	if _, err := c.BulkImport(context.Background(), "tok123", batch); err != nil {
		t.Fatalf("BulkImport: %v", err)
	}
	if auth != "Bearer tok123" {
		t.Errorf("Authorization = %q", auth)
	}
	if idem == "" {
		t.Error("Idempotency-Key header missing")
	}
}

func TestOfflineClient(t *testing.T) {
	c := NewClient("", 0)
	if !c.Offline() {
		t.Fatal("empty base URL should select the offline client")
	}

	ctx := context.Background()
	items, err := c.List(ctx, Filters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, m := range items {
		if m.Status != StatusRecognized {
			t.Errorf("default listing leaked investigating record %s", m.ID)
		}
	}

	all, _ := c.List(ctx, Filters{ShowInvestigating: true})
	if len(all) <= len(items) {
		t.Errorf("toggle should widen the listing: %d vs %d", len(all), len(items))
	}

	if _, err := c.Get(ctx, "mir_nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get err = %v, want ErrNotFound", err)
	}

	m, err := c.Get(ctx, "mir_lanciano")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if m.Century != "VIII" {
		t.Errorf("century = %q", m.Century)
	}

	stats, _ := c.Stats(ctx)
	if stats.Total != stats.Recognized+stats.Investigating {
		t.Errorf("stats don't add up: %+v", stats)
	}

	tpl, err := c.Template(ctx)
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(tpl, &doc); err != nil {
		t.Fatalf("template is not JSON: %v", err)
	}
	if _, ok := doc["miracles"].([]any); !ok {
		t.Fatal("template must carry a miracles list")
	}
}

func TestClientCreateSendsRecord(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/miracles" {
			t.Errorf("got %s %s, want POST /api/miracles", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "mir_new", "name": gotBody["name"], "status": "recognized",
			"created_at": "2026-01-05T10:00:00", "updated_at": "2026-01-05T10:00:00",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	created, err := c.Create(context.Background(), "tok", Miracle{
		Name:    "Milagre de Teste",
		Country: "Itália",
		City:    "Roma",
		Century: "XX",
		Status:  StatusRecognized,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "mir_new" {
		t.Errorf("id = %q, want mir_new", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("created_at not decoded")
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody["name"] != "Milagre de Teste" {
		t.Errorf("body name = %v", gotBody["name"])
	}
	// the backend owns identifiers; the submitted record must not carry one
	if _, ok := gotBody["id"]; ok {
		t.Errorf("create body carries an id: %v", gotBody["id"])
	}
}

func TestClientUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/api/miracles/mir_1":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "mir_1", "name": body["name"], "status": "recognized",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	updated, err := c.Update(context.Background(), "tok", "mir_1", Miracle{Name: "Renomeado", Country: "Itália", City: "Roma", Century: "XX"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != "mir_1" || updated.Name != "Renomeado" {
		t.Fatalf("updated = %+v", updated)
	}

	if _, err := c.Update(context.Background(), "tok", "mir_missing", Miracle{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	// a blank id never reaches the network
	if _, err := c.Update(context.Background(), "tok", "  ", Miracle{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("blank id err = %v, want ErrNotFound", err)
	}
}

func TestClientTimeout(t *testing.T) {
	if c := NewClient("http://example.invalid", 3*time.Second); c.http.Timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", c.http.Timeout)
	}
	if c := NewClient("http://example.invalid", 0); c.http.Timeout != defaultTimeout {
		t.Errorf("zero timeout should fall back to the default, got %v", c.http.Timeout)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_ = json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond)
	_, err := c.List(context.Background(), Filters{})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError from the deadline", err)
	}
}

func TestOfflineCreateAndUpdate(t *testing.T) {
	c := NewClient("", 0)
	ctx := context.Background()

	created, err := c.Create(ctx, "", Miracle{Name: "Novo Milagre"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(created.ID, "mir_") {
		t.Errorf("id = %q, want mir_ prefix", created.ID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps not assigned")
	}

	updated, err := c.Update(ctx, "", "mir_lanciano", Miracle{Name: "Renomeado"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != "mir_lanciano" || updated.Name != "Renomeado" {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.CreatedAt.IsZero() {
		t.Error("update should keep the original creation time")
	}

	if _, err := c.Update(ctx, "", "mir_missing", Miracle{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
