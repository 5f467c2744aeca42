package gsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "test-cx", q.Get("cx"))
		assert.Equal(t, "Acme Corp official website", q.Get("q"))
		assert.Equal(t, "3", q.Get("num"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [
				{"title": "Acme Corp", "link": "https://acme.com", "snippet": "Industrial anvils."},
				{"title": "Acme on Example", "link": "https://example.com/acme", "snippet": "Profile page."}
			]
		}`)
	}))
	defer srv.Close()

	client := NewClient("test-key", "test-cx", WithBaseURL(srv.URL))

	resp, err := client.Search(context.Background(), "Acme Corp official website", 3)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "https://acme.com", resp.Items[0].Link)
	assert.Equal(t, "Industrial anvils.", resp.Items[0].Snippet)
}

func TestSearchOmitsNumWhenZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("num"))
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer srv.Close()

	client := NewClient("k", "cx", WithBaseURL(srv.URL))

	resp, err := client.Search(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"code": 429, "message": "Quota exceeded for quota metric 'Queries'"}}`)
	}))
	defer srv.Close()

	client := NewClient("k", "cx", WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), "query", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
	assert.Contains(t, err.Error(), "Quota exceeded")
}

func TestSearchMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer srv.Close()

	client := NewClient("k", "cx", WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), "query", 3)
	require.Error(t, err)
}

func TestSearchRateLimitCancellation(t *testing.T) {
	client := NewClient("k", "cx", WithRateLimit(0.001))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "query", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
}
