// Package searchindex provides the HTTP client for the entity search
// backend that serves legacy listing and key lookups.
package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Searcher is the port for querying the search backend.
type Searcher interface {
	Search(ctx context.Context, index string, q Query) (Response, error)
}

// SortSpec is one field-level sort. It renders to the backend's
// {field: {order, missing, unmapped_type}} form.
type SortSpec struct {
	Field        string
	Order        string // "asc" | "desc"
	UnmappedType string // defaults to "keyword"
}

// Query is a structured search request: free-text term, exact-match
// filters, pagination and multi-field sort.
type Query struct {
	Term    string
	Filters map[string]string
	Offset  int
	Limit   int
	Sorts   []SortSpec
}

type Response struct {
	Total int
	Hits  []json.RawMessage
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) Search(ctx context.Context, index string, q Query) (Response, error) {
	payload := buildPayload(q)
	b, _ := json.Marshal(payload)

	raw, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/_search", index), bytes.NewReader(b))
	if err != nil {
		return Response{}, err
	}

	var out struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Response{}, fmt.Errorf("searchindex: decode error: %w", err)
	}

	resp := Response{Total: out.Hits.Total.Value}
	for _, h := range out.Hits.Hits {
		resp.Hits = append(resp.Hits, h.Source)
	}
	return resp, nil
}

func buildPayload(q Query) map[string]any {
	payload := map[string]any{
		"from": q.Offset,
		"size": q.Limit,
	}

	var filters []any
	for field, value := range q.Filters {
		filters = append(filters, map[string]any{"term": map[string]any{field: value}})
	}

	switch {
	case q.Term == "" && len(filters) == 0:
		payload["query"] = map[string]any{"match_all": map[string]any{}}
	case q.Term == "":
		payload["query"] = map[string]any{"bool": map[string]any{"filter": filters}}
	default:
		boolQ := map[string]any{
			"must": map[string]any{
				"multi_match": map[string]any{"query": q.Term, "fields": []string{"title^2", "description"}},
			},
		}
		if len(filters) > 0 {
			boolQ["filter"] = filters
		}
		payload["query"] = map[string]any{"bool": boolQ}
	}

	if len(q.Sorts) > 0 {
		sorts := make([]any, 0, len(q.Sorts))
		for _, s := range q.Sorts {
			ut := s.UnmappedType
			if ut == "" {
				ut = "keyword"
			}
			sorts = append(sorts, map[string]any{
				s.Field: map[string]any{"order": s.Order, "missing": "_last", "unmapped_type": ut},
			})
		}
		payload["sort"] = sorts
	}
	return payload
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("searchindex error: %s", string(data))
	}
	return data, nil
}
