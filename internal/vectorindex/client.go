// Package vectorindex is the HTTP client for the semantic-search index
// service. The index is eventually-consistent with the resume store; the
// reconciliation engine uses this client to repair drift.
package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go-screening-backend/internal/domain"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxTries   uint
}

// NewClient creates a vector index client. Transient failures (network
// errors, 5xx) are retried with exponential backoff; 4xx responses are
// not retried. All three index operations are idempotent, so retrying is
// always safe.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxTries: 3,
	}
}

type listResponse struct {
	Entries []domain.VectorEntry `json:"entries"`
}

type upsertRequest struct {
	Content string `json:"content"`
}

// ListEntries returns the raw index listing. The index may hold more than
// one document per resume; every occurrence is returned.
func (c *Client) ListEntries(ctx context.Context) ([]domain.VectorEntry, error) {
	var out listResponse
	if err := c.do(ctx, http.MethodGet, "/v1/entries", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// Upsert creates or replaces the single index entry for a resume
func (c *Client) Upsert(ctx context.Context, id uuid.UUID, content string) error {
	return c.do(ctx, http.MethodPut, "/v1/entries/"+id.String(), &upsertRequest{Content: content}, nil)
}

// Delete removes one document by its index-internal id. A 404 counts as
// success: the document is gone either way.
func (c *Client) Delete(ctx context.Context, documentID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/documents/"+url.PathEscape(documentID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	operation := func() (struct{}, error) {
		var body *bytes.Reader
		if payload != nil {
			raw, err := json.Marshal(payload)
			if err != nil {
				return struct{}{}, backoff.Permanent(err)
			}
			body = bytes.NewReader(raw)
		} else {
			body = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		switch {
		case method == http.MethodDelete && resp.StatusCode == http.StatusNotFound:
			return struct{}{}, nil
		case resp.StatusCode >= 500:
			return struct{}{}, fmt.Errorf("vector index: %s %s: %s", method, path, resp.Status)
		case resp.StatusCode >= 400:
			return struct{}{}, backoff.Permanent(fmt.Errorf("vector index: %s %s: %s", method, path, resp.Status))
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return struct{}{}, backoff.Permanent(fmt.Errorf("vector index: decode %s %s: %w", method, path, err))
			}
		}
		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
	return err
}
