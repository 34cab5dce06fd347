package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestParseBatch(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantErr error
		wantLen int
	}{
		{"not json", "definitely not json", ErrMalformedInput, 0},
		{"truncated json", `{"miracles": [`, ErrMalformedInput, 0},
		{"top-level array", `[1, 2, 3]`, ErrInvalidShape, 0},
		{"top-level string", `"miracles"`, ErrInvalidShape, 0},
		{"object without list", `{"records": []}`, ErrInvalidShape, 0},
		{"miracles not a list", `{"miracles": {"a": 1}}`, ErrInvalidShape, 0},
		{"empty list", `{"miracles": []}`, nil, 0},
		{"two items", `{"miracles": [{"name": "A"}, {"name": "B"}]}`, nil, 2},
		{"extra keys ignored", `{"miracles": [{"name": "A"}], "source": "x"}`, nil, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			batch, err := ParseBatch(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if err == nil && len(batch.Miracles) != tc.wantLen {
				t.Fatalf("len = %d, want %d", len(batch.Miracles), tc.wantLen)
			}
		})
	}
}

func TestReconcilerRejectsBadInputBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"imported_count": 0, "error_count": 0, "imported": []any{}, "errors": []any{},
		})
	}))
	defer srv.Close()

	rec := NewReconciler(NewClient(srv.URL, 0))
	ctx := context.Background()

	if _, err := rec.Import(ctx, "tok", "not json"); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("err = %v, want ErrMalformedInput", err)
	}
	if _, err := rec.Import(ctx, "tok", `{"foo": []}`); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("err = %v, want ErrInvalidShape", err)
	}
	if n := calls.Load(); n != 0 {
		t.Fatalf("backend saw %d requests for invalid documents, want 0", n)
	}

	if _, err := rec.Import(ctx, "tok", `{"miracles": []}`); err != nil {
		t.Fatalf("valid empty batch: %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("backend saw %d requests, want 1", n)
	}
}

func TestImportReportCountsFollowLists(t *testing.T) {
	// the backend's counters are ignored in favor of the list lengths
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"imported_count": 99,
			"error_count":    99,
			"imported":       []map[string]string{{"name": "A", "id": "mir_a"}},
			"errors": []map[string]any{
				{"index": 1, "name": "", "error": "missing required field: name"},
			},
		})
	}))
	defer srv.Close()

	rec := NewReconciler(NewClient(srv.URL, 0))
	report, err := rec.Import(context.Background(), "tok", `{"miracles": [{"name": "A"}, {}]}`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.ImportedCount != 1 || report.ErrorCount != 1 {
		t.Fatalf("counts = %d/%d, want 1/1", report.ImportedCount, report.ErrorCount)
	}
	if report.Imported[0].ID != "mir_a" {
		t.Errorf("imported = %+v", report.Imported)
	}
	if report.Errors[0].Index != 1 {
		t.Errorf("errors = %+v", report.Errors)
	}
}

func TestOfflineImportFlagsMissingNames(t *testing.T) {
	rec := NewReconciler(NewClient("", 0))
	report, err := rec.Import(context.Background(), "tok",
		`{"miracles": [{"name": "Novo Milagre"}, {"country": "Brasil"}]}`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.ImportedCount != 1 || report.ErrorCount != 1 {
		t.Fatalf("counts = %d/%d", report.ImportedCount, report.ErrorCount)
	}
	if report.Errors[0].Index != 1 {
		t.Errorf("error index = %d, want 1", report.Errors[0].Index)
	}
}
