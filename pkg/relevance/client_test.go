package relevance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/proj-1/linkedin/search", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Acme Corp", req["company_name"])

		fmt.Fprint(w, `{
			"description": "Industrial anvil manufacturer.",
			"address": "123 Main Street",
			"state": "CA",
			"postal_code": "94105",
			"phone": "+1 650-253-0000",
			"country": "United States",
			"email": "info@acme.com",
			"employees": "51-200",
			"website": "https://acme.com",
			"industry": "Manufacturing"
		}`)
	}))
	defer srv.Close()

	client := NewClient("test-token", "proj-1", WithBaseURL(srv.URL))

	resp, err := client.CompanyLookup(context.Background(), "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, "Industrial anvil manufacturer.", resp.Description)
	assert.Equal(t, "CA", resp.State)
	assert.Equal(t, "info@acme.com", resp.Email)
	assert.Equal(t, "51-200", resp.Employees)
	assert.Equal(t, "Manufacturing", resp.Industry)
}

func TestCompanyLookupErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "invalid token"}`)
	}))
	defer srv.Close()

	client := NewClient("bad-token", "proj-1", WithBaseURL(srv.URL))

	_, err := client.CompanyLookup(context.Background(), "Acme Corp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 401")
}

func TestCompanyLookupMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html>gateway error</html>")
	}))
	defer srv.Close()

	client := NewClient("t", "proj-1", WithBaseURL(srv.URL))

	_, err := client.CompanyLookup(context.Background(), "Acme Corp")
	require.Error(t, err)
}
