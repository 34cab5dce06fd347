package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	defaultTimeout    = 8 * time.Second
	idempotencyHeader = "Idempotency-Key"
	apiPrefix         = "api"
)

// ErrNotFound is returned when the backend reports no record for an identifier.
var ErrNotFound = errors.New("catalog: not found")

// ErrInvalidCredentials is returned when the backend rejects a login attempt.
var ErrInvalidCredentials = errors.New("catalog: invalid credentials")

// TransportError reports a failed backend interaction: unreachable service,
// a non-2xx status, or a response body that does not match the expected shape.
type TransportError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog: %s status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("catalog: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client issues typed calls against the catalog REST backend. When baseURL is
// empty, the client serves deterministic sample data so the site runs without
// a backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a backend client rooted at baseURL. A non-positive
// timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Offline reports whether the client serves sample data instead of a backend.
func (c *Client) Offline() bool { return c == nil || c.baseURL == "" }

// List fetches the records matching filters.
func (c *Client) List(ctx context.Context, f Filters) ([]Miracle, error) {
	if c.Offline() {
		return fakeList(f), nil
	}
	var payload []miraclePayload
	if err := c.getJSON(ctx, "list", []string{"miracles"}, f.Query(), &payload); err != nil {
		return nil, err
	}
	items := make([]Miracle, 0, len(payload))
	for _, p := range payload {
		items = append(items, p.toMiracle())
	}
	return items, nil
}

// Get fetches one record by identifier. A backend 404 maps to ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (Miracle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Miracle{}, ErrNotFound
	}
	if c.Offline() {
		return fakeGet(id)
	}
	var payload miraclePayload
	if err := c.getJSON(ctx, "get", []string{"miracles", id}, nil, &payload); err != nil {
		return Miracle{}, err
	}
	return payload.toMiracle(), nil
}

// Create submits a new record. The backend assigns the identifier and
// timestamps; token authorizes the call.
func (c *Client) Create(ctx context.Context, token string, m Miracle) (Miracle, error) {
	if c.Offline() {
		return fakeCreate(m), nil
	}
	body, err := json.Marshal(fromMiracle(m))
	if err != nil {
		return Miracle{}, &TransportError{Op: "create", Err: err}
	}
	var payload miraclePayload
	if err := c.postJSON(ctx, "create", []string{"miracles"}, token, nil, body, &payload); err != nil {
		return Miracle{}, err
	}
	return payload.toMiracle(), nil
}

// Update replaces the editable fields of one record. A backend 404 maps to
// ErrNotFound.
func (c *Client) Update(ctx context.Context, token, id string, m Miracle) (Miracle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Miracle{}, ErrNotFound
	}
	if c.Offline() {
		return fakeUpdate(id, m)
	}
	body, err := json.Marshal(fromMiracle(m))
	if err != nil {
		return Miracle{}, &TransportError{Op: "update", Err: err}
	}
	var payload miraclePayload
	if err := c.do(ctx, "update", http.MethodPut, []string{"miracles", id}, token, nil, body, &payload); err != nil {
		return Miracle{}, err
	}
	return payload.toMiracle(), nil
}

// Facets fetches the distinct country and century values.
func (c *Client) Facets(ctx context.Context) (Facets, error) {
	if c.Offline() {
		return fakeFacets(), nil
	}
	var payload facetsPayload
	if err := c.getJSON(ctx, "facets", []string{"filters"}, nil, &payload); err != nil {
		return Facets{}, err
	}
	return Facets{Countries: payload.Countries, Centuries: payload.Centuries}, nil
}

// Stats fetches the catalog counters.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	if c.Offline() {
		return fakeStats(), nil
	}
	var payload statsPayload
	if err := c.getJSON(ctx, "stats", []string{"stats"}, nil, &payload); err != nil {
		return Stats{}, err
	}
	return Stats{
		Total:         payload.Total,
		Recognized:    payload.Recognized,
		Investigating: payload.Investigating,
		Countries:     payload.Countries,
	}, nil
}

// Template fetches the example batch document for the import page download.
// The bytes are passed through without validation.
func (c *Client) Template(ctx context.Context) ([]byte, error) {
	if c.Offline() {
		return fakeTemplate(), nil
	}
	endpoint, err := c.endpoint("miracles", "template", "json")
	if err != nil {
		return nil, &TransportError{Op: "template", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Op: "template", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "template", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, &TransportError{Op: "template", Status: resp.StatusCode, Body: drainError(resp.Body)}
	}
	return io.ReadAll(resp.Body)
}

// BulkImport submits a parsed batch document in one request and returns the
// backend's per-item report. token authorizes the call.
func (c *Client) BulkImport(ctx context.Context, token string, batch ImportBatch) (ImportReport, error) {
	if c.Offline() {
		return fakeImport(batch), nil
	}
	body, err := json.Marshal(batch)
	if err != nil {
		return ImportReport{}, &TransportError{Op: "bulk-import", Err: err}
	}
	var payload importReportPayload
	headers := map[string]string{idempotencyHeader: ulid.Make().String()}
	if err := c.postJSON(ctx, "bulk-import", []string{"miracles", "bulk-import"}, token, headers, body, &payload); err != nil {
		return ImportReport{}, err
	}
	return payload.toReport(), nil
}

// Credentials is the session material returned by a successful login.
type Credentials struct {
	Token    string
	UserID   string
	UserName string
	Email    string
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	if c.Offline() {
		return fakeLogin(email)
	}
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return Credentials{}, &TransportError{Op: "login", Err: err}
	}
	var payload tokenPayload
	err = c.postJSON(ctx, "login", []string{"auth", "login"}, "", nil, body, &payload)
	var te *TransportError
	if errors.As(err, &te) && te.Status == http.StatusUnauthorized {
		return Credentials{}, ErrInvalidCredentials
	}
	if err != nil {
		return Credentials{}, err
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return Credentials{}, &TransportError{Op: "login", Err: errors.New("response missing access token")}
	}
	return Credentials{
		Token:    payload.AccessToken,
		UserID:   payload.User.ID,
		UserName: payload.User.Name,
		Email:    payload.User.Email,
	}, nil
}

// Delete removes one record; the backend 404 maps to ErrNotFound.
func (c *Client) Delete(ctx context.Context, token, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if c.Offline() {
		return fakeDelete(id)
	}
	return c.do(ctx, "delete", http.MethodDelete, []string{"miracles", id}, token, nil, nil, nil)
}

// DeleteByCentury removes every record labelled with century. The backend
// reports how many records were removed.
func (c *Client) DeleteByCentury(ctx context.Context, token, century string) (int, error) {
	century = strings.TrimSpace(century)
	if century == "" {
		return 0, ErrNotFound
	}
	if c.Offline() {
		return fakeDeleteByCentury(century), nil
	}
	var payload struct {
		DeletedCount int `json:"deleted_count"`
	}
	err := c.do(ctx, "delete-century", http.MethodDelete, []string{"miracles", "by-century", century}, token, nil, nil, &payload)
	if err != nil {
		return 0, err
	}
	return payload.DeletedCount, nil
}

// ContactMessage is a visitor message forwarded to the backend.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// SubmitContact forwards a contact form submission.
func (c *Client) SubmitContact(ctx context.Context, msg ContactMessage) error {
	if c.Offline() {
		return nil
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return &TransportError{Op: "contact", Err: err}
	}
	return c.postJSON(ctx, "contact", []string{"contact-messages"}, "", nil, body, nil)
}

func (c *Client) endpoint(parts ...string) (string, error) {
	segs := append([]string{c.baseURL, apiPrefix}, parts...)
	return url.JoinPath(segs[0], segs[1:]...)
}

func (c *Client) getJSON(ctx context.Context, op string, parts []string, query url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, parts, "", query, nil, out)
}

func (c *Client) postJSON(ctx context.Context, op string, parts []string, token string, headers map[string]string, body []byte, out any) error {
	return c.doWithHeaders(ctx, op, http.MethodPost, parts, token, nil, body, headers, out)
}

func (c *Client) do(ctx context.Context, op, method string, parts []string, token string, query url.Values, body []byte, out any) error {
	return c.doWithHeaders(ctx, op, method, parts, token, query, body, nil, out)
}

func (c *Client) doWithHeaders(ctx context.Context, op, method string, parts []string, token string, query url.Values, body []byte, headers map[string]string, out any) error {
	endpoint, err := c.endpoint(parts...)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return &TransportError{Op: op, Status: resp.StatusCode, Body: drainError(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
