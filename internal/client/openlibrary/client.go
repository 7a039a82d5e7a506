package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type Client struct {
	host       string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

// IsRateLimited reports whether the error is an upstream throttle response.
// Callers treat it as transient and retry on the next tick.
func IsRateLimited(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusTooManyRequests
}

func NewClient(httpClient *http.Client, host string) *Client {
	if host == "" {
		host = "https://openlibrary.org"
	}
	host = strings.TrimRight(host, "/")
	return &Client{
		host:       host,
		httpClient: httpClient,
	}
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

type SearchParams struct {
	Subject string
	Query   string
	Page    int
	Limit   int
}

// Search returns one page of work records. An empty page signals exhaustion.
func (c *Client) Search(ctx context.Context, params *SearchParams) ([]Record, error) {
	query := url.Values{}
	q := "*"
	if params != nil && params.Query != "" {
		q = params.Query
	}
	query.Set("q", q)
	if params != nil && params.Subject != "" {
		query.Set("subject", params.Subject)
	}
	page := 1
	limit := 100
	if params != nil {
		if params.Page > 0 {
			page = params.Page
		}
		if params.Limit > 0 {
			limit = params.Limit
		}
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("fields", strings.Join(recordFields, ","))

	body, err := c.doRequest(ctx, "/search.json", query)
	if err != nil {
		return nil, err
	}
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return parsed.Docs, nil
}
