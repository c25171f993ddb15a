package confluence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config holds the connection settings for a Confluence instance.
type Config struct {
	BaseURL  string `json:"base_url"` // REST API base, e.g. https://acme.atlassian.net/wiki/rest/api
	PageURL  string `json:"page_url"` // prefix for building absolute page links from _links.webui
	Email    string `json:"email"`
	APIToken string `json:"api_token"`
}

// Client provides access to the Confluence REST API using basic auth.
type Client struct {
	cfg        Config
	httpClient *http.Client

	// listAttempts and backoff control the bounded retry on list calls.
	listAttempts int
	backoff      time.Duration
}

// NewClient creates a new Confluence API client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		listAttempts: 3,
		backoff:      500 * time.Millisecond,
	}
}

// PageLink builds the absolute browser URL for a page's relative webui link.
func (c *Client) PageLink(webui string) string {
	return strings.TrimRight(c.cfg.PageURL, "/") + webui
}

// ListPages fetches one batch of pages with expanded body and version.
// spaceKey may be empty to list pages across all spaces. Transient failures
// (transport errors and 5xx responses) are retried with backoff; repeated
// failure is returned to the caller.
func (c *Client) ListPages(ctx context.Context, spaceKey string, start, limit int) ([]Page, error) {
	params := url.Values{}
	params.Set("type", "page")
	params.Set("start", strconv.Itoa(start))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("expand", "body.storage,version")
	if spaceKey != "" {
		params.Set("spaceKey", spaceKey)
	}
	endpoint := fmt.Sprintf("%s/content?%s", strings.TrimRight(c.cfg.BaseURL, "/"), params.Encode())

	var lastErr error
	for attempt := 0; attempt < c.listAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff << (attempt - 1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		list, err := c.getList(ctx, endpoint)
		if err == nil {
			pages := make([]Page, 0, len(list.Results))
			for _, item := range list.Results {
				pages = append(pages, item.toPage())
			}
			return pages, nil
		}
		lastErr = err
		if !isTransient(err) {
			break
		}
	}
	return nil, fmt.Errorf("listing pages (start=%d): %w", start, lastErr)
}

// GetPage fetches a single page by ID with its body expanded.
func (c *Client) GetPage(ctx context.Context, id string) (*Page, error) {
	endpoint := fmt.Sprintf("%s/content/%s?expand=body.storage,version",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(id))

	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var item contentItem
	if err := c.do(req, &item); err != nil {
		return nil, fmt.Errorf("fetching page %s: %w", id, err)
	}
	page := item.toPage()
	return &page, nil
}

// Search issues a CQL query against the content search endpoint.
func (c *Client) Search(ctx context.Context, cql string) ([]Page, error) {
	params := url.Values{}
	params.Set("cql", cql)
	endpoint := fmt.Sprintf("%s/content/search?%s", strings.TrimRight(c.cfg.BaseURL, "/"), params.Encode())

	list, err := c.getList(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("searching content: %w", err)
	}

	pages := make([]Page, 0, len(list.Results))
	for _, item := range list.Results {
		pages = append(pages, item.toPage())
	}
	return pages, nil
}

func (c *Client) newRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Email, c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) getList(ctx context.Context, endpoint string) (*contentList, error) {
	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var list contentList
	if err := c.do(req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apiError{transport: true, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &apiError{status: resp.StatusCode, err: fmt.Errorf("confluence API error (%d): %s", resp.StatusCode, string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// apiError distinguishes retryable upstream failures from permanent ones.
type apiError struct {
	status    int
	transport bool
	err       error
}

func (e *apiError) Error() string { return e.err.Error() }
func (e *apiError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var ae *apiError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.transport || ae.status >= 500
}
