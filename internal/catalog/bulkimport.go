package catalog

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrMalformedInput is returned when the batch text is not valid JSON.
var ErrMalformedInput = errors.New("catalog: import document is not valid JSON")

// ErrInvalidShape is returned when the parsed document lacks a top-level
// "miracles" list.
var ErrInvalidShape = errors.New("catalog: import document missing \"miracles\" list")

// ImportBatch is the parsed batch document. Candidate items are carried as raw
// messages; the backend validates each one independently.
type ImportBatch struct {
	Miracles []json.RawMessage `json:"miracles"`
}

// ImportedItem marks one successfully imported candidate.
type ImportedItem struct {
	Name string
	ID   string
}

// ImportError marks one rejected candidate with the backend's reason.
type ImportError struct {
	Index int
	Name  string
	Error string
}

// ImportReport is the per-item outcome of one import attempt. ImportedCount
// and ErrorCount always equal the lengths of the respective lists.
type ImportReport struct {
	ImportedCount int
	ErrorCount    int
	Imported      []ImportedItem
	Errors        []ImportError
}

// ParseBatch deserializes a user-supplied batch document. It fails with
// ErrMalformedInput when the text is not JSON and with ErrInvalidShape when
// the document is not an object carrying a "miracles" array. Neither failure
// involves the network.
func ParseBatch(rawText string) (ImportBatch, error) {
	var probe any
	if err := json.Unmarshal([]byte(rawText), &probe); err != nil {
		return ImportBatch{}, ErrMalformedInput
	}
	obj, ok := probe.(map[string]any)
	if !ok {
		return ImportBatch{}, ErrInvalidShape
	}
	if _, ok := obj["miracles"].([]any); !ok {
		return ImportBatch{}, ErrInvalidShape
	}
	var batch ImportBatch
	if err := json.Unmarshal([]byte(rawText), &batch); err != nil {
		return ImportBatch{}, ErrMalformedInput
	}
	if batch.Miracles == nil {
		batch.Miracles = []json.RawMessage{}
	}
	return batch, nil
}

// Reconciler runs one-shot batch imports: parse locally, submit the whole
// document in a single request, and reconcile the per-item report. There is
// no partial retry; a failed subset is corrected and resubmitted whole.
type Reconciler struct {
	client *Client
}

// NewReconciler builds a reconciler backed by client.
func NewReconciler(client *Client) *Reconciler {
	return &Reconciler{client: client}
}

// Import parses rawText and, if it is well formed, submits the batch under
// token. Parse failures are reported before any network call is made.
func (r *Reconciler) Import(ctx context.Context, token, rawText string) (ImportReport, error) {
	batch, err := ParseBatch(rawText)
	if err != nil {
		return ImportReport{}, err
	}
	report, err := r.client.BulkImport(ctx, token, batch)
	if err != nil {
		return ImportReport{}, err
	}
	return report, nil
}
