// Package relevance wraps the Relevance AI LinkedIn company lookup tool.
package relevance

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.relevance.ai/v1/project"

// Client performs LinkedIn company lookups through Relevance AI.
type Client interface {
	CompanyLookup(ctx context.Context, companyName string) (*CompanyLookupResponse, error)
}

// CompanyLookupResponse is the structured company profile returned by the
// LinkedIn tool. Missing fields come back as empty strings or provider
// placeholders; callers are expected to sanitize.
type CompanyLookupResponse struct {
	Description string `json:"description"`
	Address     string `json:"address"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	Email       string `json:"email"`
	Employees   string `json:"employees"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
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

type httpClient struct {
	authToken string
	projectID string
	baseURL   string
	http      *http.Client
}

// NewClient creates a Relevance AI client scoped to one project.
func NewClient(authToken, projectID string, opts ...Option) Client {
	c := &httpClient{
		authToken: authToken,
		projectID: projectID,
		baseURL:   defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type lookupRequest struct {
	CompanyName string `json:"company_name"`
}

func (c *httpClient) CompanyLookup(ctx context.Context, companyName string) (*CompanyLookupResponse, error) {
	body, err := json.Marshal(lookupRequest{CompanyName: companyName})
	if err != nil {
		return nil, eris.Wrap(err, "relevance: marshal request")
	}

	endpoint := c.baseURL + "/" + c.projectID + "/linkedin/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "relevance: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "relevance: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "relevance: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("relevance: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result CompanyLookupResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "relevance: unmarshal response")
	}

	return &result, nil
}
