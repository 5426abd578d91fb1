package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrUpstream marks any failure of the hosted tabular service:
// transport errors, non-2xx responses, and undecodable bodies all
// collapse into it. Nothing here is retried.
var ErrUpstream = errors.New("airtable upstream error")

const (
	defaultBaseURL = "https://api.airtable.com"
	gridView       = "Grid view"
	pageSize       = 100
)

// Record is one row of a table: the upstream id plus the raw field map.
type Record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// Client issues filterByFormula selects against one Airtable base. It
// holds no record state; every lookup is a live request.
type Client struct {
	BaseURL string
	APIKey  string
	BaseID  string
	Client  *http.Client
}

// SelectFirstPage fetches at most one page of rows matching filter.
// Good enough when sampling is acceptable (autocomplete) or when the
// filter is expected to match at most one logical row (tracing).
func (c *Client) SelectFirstPage(ctx context.Context, table string, filter Expr) ([]Record, error) {
	page, _, err := c.fetchPage(ctx, table, filter, "")
	return page, err
}

// SelectAll follows the offset cursor and aggregates every page of
// matching rows.
func (c *Client) SelectAll(ctx context.Context, table string, filter Expr) ([]Record, error) {
	var all []Record
	offset := ""
	for {
		page, next, err := c.fetchPage(ctx, table, filter, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if next == "" {
			return all, nil
		}
		offset = next
	}
}

func (c *Client) fetchPage(ctx context.Context, table string, filter Expr, offset string) ([]Record, string, error) {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	q := url.Values{}
	q.Set("view", gridView)
	q.Set("pageSize", fmt.Sprintf("%d", pageSize))
	if filter != nil {
		q.Set("filterByFormula", filter.Formula())
	}
	if offset != "" {
		q.Set("offset", offset)
	}
	endpoint := fmt.Sprintf("%s/v0/%s/%s?%s", base, c.BaseID, url.PathEscape(table), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("%w: http %s", ErrUpstream, resp.Status)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return body.Records, body.Offset, nil
}
