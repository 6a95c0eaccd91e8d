// Package appwrite is a thin REST client for the Appwrite Databases API.
//
// Only the surface the platform needs is implemented: document CRUD, listing
// with query filters, and the health endpoint. Feature adapters own the
// mapping between documents and domain entities; this package only moves
// JSON.
package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("appwrite: document not found")

// Config holds connection settings for an Appwrite project.
type Config struct {
	Endpoint   string // e.g. "https://cloud.appwrite.io/v1"
	ProjectID  string
	APIKey     string
	DatabaseID string
	Timeout    time.Duration
}

// Error is a structured error response from the Appwrite API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("appwrite: %s (code %d, type %s)", e.Message, e.Code, e.Type)
}

// Client talks to a single Appwrite project and database.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// DatabaseID returns the configured database identifier.
func (c *Client) DatabaseID() string {
	return c.cfg.DatabaseID
}

// ListOptions controls filtering and ordering for ListDocuments.
type ListOptions struct {
	Queries    []string // e.g. `equal("status", "open")`
	OrderField string
	OrderType  string // "ASC" or "DESC"
	Limit      int
}

// Equal builds an equality query filter for ListOptions.
func Equal(attribute, value string) string {
	return fmt.Sprintf("equal(%q, %q)", attribute, value)
}

// Database describes a database returned by the list endpoint.
type Database struct {
	ID   string `json:"$id"`
	Name string `json:"name"`
}

// Collection describes a collection returned by the list endpoint.
type Collection struct {
	ID   string `json:"$id"`
	Name string `json:"name"`
}

// Health pings the Appwrite health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" && out.Status != "pass" {
		return fmt.Errorf("appwrite health status %q", out.Status)
	}
	return nil
}

// ListDatabases returns all databases visible to the API key.
func (c *Client) ListDatabases(ctx context.Context) ([]Database, error) {
	var out struct {
		Total     int        `json:"total"`
		Databases []Database `json:"databases"`
	}
	if err := c.do(ctx, http.MethodGet, "/databases", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Databases, nil
}

// ListCollections returns the collections of the configured database.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var out struct {
		Total       int          `json:"total"`
		Collections []Collection `json:"collections"`
	}
	path := fmt.Sprintf("/databases/%s/collections", c.cfg.DatabaseID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Collections, nil
}

// CreateDocument creates a document and decodes the stored result into out.
func (c *Client) CreateDocument(ctx context.Context, collectionID, documentID string, data any, out any) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", c.cfg.DatabaseID, collectionID)
	body := map[string]any{
		"documentId": documentID,
		"data":       data,
	}
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// GetDocument fetches a single document by ID.
func (c *Client) GetDocument(ctx context.Context, collectionID, documentID string, out any) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", c.cfg.DatabaseID, collectionID, documentID)
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

// UpdateDocument patches the given fields of a document.
func (c *Client) UpdateDocument(ctx context.Context, collectionID, documentID string, data any, out any) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", c.cfg.DatabaseID, collectionID, documentID)
	body := map[string]any{"data": data}
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// DeleteDocument removes a document by ID.
func (c *Client) DeleteDocument(ctx context.Context, collectionID, documentID string) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", c.cfg.DatabaseID, collectionID, documentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListDocuments fetches documents matching opts and decodes the documents
// array into out, which must be a pointer to a slice.
func (c *Client) ListDocuments(ctx context.Context, collectionID string, opts ListOptions, out any) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", c.cfg.DatabaseID, collectionID)

	q := url.Values{}
	for _, query := range opts.Queries {
		q.Add("queries", query)
	}
	if opts.OrderField != "" {
		q.Set("orderField", opts.OrderField)
		orderType := opts.OrderType
		if orderType == "" {
			orderType = "DESC"
		}
		q.Set("orderType", orderType)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	var envelope struct {
		Total     int             `json:"total"`
		Documents json.RawMessage `json:"documents"`
	}
	if err := c.do(ctx, http.MethodGet, path, q, nil, &envelope); err != nil {
		return err
	}
	if len(envelope.Documents) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Documents, out)
}

// do performs a request against the Appwrite API and decodes the response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.cfg.Endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.cfg.ProjectID)
	req.Header.Set("X-Appwrite-Key", c.cfg.APIKey)

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode >= 400 {
		var apiErr Error
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("appwrite http %d", res.StatusCode)
		}
		apiErr.Code = res.StatusCode
		return &apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
