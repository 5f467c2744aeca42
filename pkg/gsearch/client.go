// Package gsearch wraps the Google Custom Search JSON API.
package gsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Client performs Custom Search queries.
type Client interface {
	Search(ctx context.Context, query string, num int) (*SearchResponse, error)
}

// SearchResponse is the subset of the Custom Search response we consume.
type SearchResponse struct {
	Items []Item `json:"items"`
}

// Item is a single search result.
type Item struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// apiError is the error envelope the API returns on quota and config
// problems (daily quota exhaustion surfaces as 429 here).
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default client-side query throttle (5 req/s).
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	apiKey  string
	cx      string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Custom Search client for the given API key and
// programmable search engine ID.
func NewClient(apiKey, cx string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		cx:      cx,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(5, 5),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string, num int) (*SearchResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "gsearch: rate limit wait")
		}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.cx)
	params.Set("q", query)
	if num > 0 {
		params.Set("num", strconv.Itoa(num))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "gsearch: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "gsearch: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "gsearch: read response")
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, eris.Errorf("gsearch: unexpected status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, eris.Errorf("gsearch: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result SearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "gsearch: unmarshal response")
	}

	return &result, nil
}
