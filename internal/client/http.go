package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/alfredjeanlab/golink/internal/importer"
	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/resolver"
)

// HTTPClient implements LinkClient using the golink HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			// Redirects carry the resolution answer; follow nothing.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// Resolve asks the server to resolve a typed query without following the
// redirect, so the CLI can print the target instead of fetching it.
func (c *HTTPClient) Resolve(ctx context.Context, query string) (*ResolveResult, error) {
	q := url.Values{}
	q.Set("q", query)

	req, err := c.newRequest(ctx, http.MethodGet, "/v1/resolve?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusFound {
		return &ResolveResult{RedirectURL: resp.Header.Get("Location")}, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, apiErrorFromBody(resp.StatusCode, body)
	}

	var sug resolver.Suggestions
	if err := json.Unmarshal(body, &sug); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &ResolveResult{Suggestions: &sug}, nil
}

// --- Link CRUD ---

func (c *HTTPClient) CreateLink(ctx context.Context, req *CreateLinkRequest) (*model.Link, error) {
	var link model.Link
	if err := c.doJSON(ctx, http.MethodPost, "/v1/links", req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *HTTPClient) GetLink(ctx context.Context, keyword string) (*model.Link, error) {
	var link model.Link
	if err := c.doJSON(ctx, http.MethodGet, "/v1/links/"+url.PathEscape(keyword), nil, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *HTTPClient) ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksResponse, error) {
	q := url.Values{}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.List != "" {
		q.Set("list", req.List)
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}

	path := "/v1/links"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListLinksResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateLink(ctx context.Context, keyword string, req *UpdateLinkRequest) (*model.Link, error) {
	var link model.Link
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/links/"+url.PathEscape(keyword), req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *HTTPClient) DeleteLink(ctx context.Context, keyword string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/links/"+url.PathEscape(keyword), nil, nil)
}

func (c *HTTPClient) SetLinkLists(ctx context.Context, keyword string, lists []string) (*model.Link, error) {
	body := map[string][]string{"lists": lists}
	var link model.Link
	if err := c.doJSON(ctx, http.MethodPut, "/v1/links/"+url.PathEscape(keyword)+"/lists", body, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *HTTPClient) RefreshSearch(ctx context.Context, keyword string) (bool, error) {
	var resp struct {
		SearchEnabled bool `json:"search_enabled"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/v1/links/"+url.PathEscape(keyword)+"/refresh-search", nil, &resp)
	if err != nil {
		return false, err
	}
	return resp.SearchEnabled, nil
}

// --- Lists ---

func (c *HTTPClient) ListLists(ctx context.Context) ([]*model.List, error) {
	var resp struct {
		Lists []*model.List `json:"lists"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/lists", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Lists, nil
}

func (c *HTTPClient) GetList(ctx context.Context, slug string) (*ListDetail, error) {
	var detail ListDetail
	if err := c.doJSON(ctx, http.MethodGet, "/v1/lists/"+url.PathEscape(slug), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *HTTPClient) DeleteList(ctx context.Context, slug string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/lists/"+url.PathEscape(slug), nil, nil)
}

// --- Bulk ---

// Import uploads a CSV document and returns the per-row summary.
func (c *HTTPClient) Import(ctx context.Context, csv io.Reader) (*importer.Summary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/import", csv)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/csv")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, apiErrorFromBody(resp.StatusCode, body)
	}

	var sum importer.Summary
	if err := json.Unmarshal(body, &sum); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &sum, nil
}

// Export streams the server's CSV export to w.
func (c *HTTPClient) Export(ctx context.Context, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/export", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return apiErrorFromBody(resp.StatusCode, body)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("reading export: %w", err)
	}
	return nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/healthz", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func apiErrorFromBody(status int, body []byte) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return &APIError{StatusCode: status, Message: errResp.Error}
	}
	return &APIError{StatusCode: status, Message: string(body)}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.authorize(req)
	return req, nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiErrorFromBody(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
