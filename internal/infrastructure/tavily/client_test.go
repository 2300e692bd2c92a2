package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupefinder/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com")

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestSetDebug(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com")

	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "test-api-key", payload["api_key"])
		assert.Equal(t, "red midi dress dupe", payload["query"])
		assert.Equal(t, "basic", payload["search_depth"])
		assert.EqualValues(t, 8, payload["max_results"])

		resp := map[string]interface{}{
			"query": "red midi dress dupe",
			"results": []map[string]interface{}{
				{
					"title":   "Red Midi Dress",
					"url":     "https://shop.example.com/p/1",
					"content": "Buy now for $49.99",
				},
				{
					"url":     "https://shop.example.com/p/2",
					"snippet": "legacy snippet field",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	results, err := client.Search(context.Background(), "red midi dress dupe", 8)

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Red Midi Dress", results[0].Title)
	assert.Equal(t, "https://shop.example.com/p/1", results[0].URL)
	assert.Equal(t, "Buy now for $49.99", results[0].Snippet)

	// Missing title falls back to Untitled, content falls back to snippet
	assert.Equal(t, "Untitled", results[1].Title)
	assert.Equal(t, "legacy snippet field", results[1].Snippet)
}

func TestSearch_MissingAPIKey(t *testing.T) {
	client := NewClient("", "https://api.example.com")

	_, err := client.Search(context.Background(), "anything", 8)
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestSearch_ProviderErrorNoRetry(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	_, err := client.Search(context.Background(), "red midi dress dupe", 8)

	assert.ErrorIs(t, err, domain.ErrProviderFailure)
	// Provider failures are terminal for the request
	assert.EqualValues(t, 1, atomic.LoadInt32(&requests))
}

func TestSearch_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	_, err := client.Search(context.Background(), "red midi dress dupe", 8)
	assert.Error(t, err)
}

func TestMapToSearchResults(t *testing.T) {
	t.Run("caps at maxResults", func(t *testing.T) {
		resp := &searchResponse{
			Results: []searchResult{
				{Title: "a", URL: "https://a.example"},
				{Title: "b", URL: "https://b.example"},
				{Title: "c", URL: "https://c.example"},
			},
		}

		out := MapToSearchResults(resp, 2)
		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].Title)
		assert.Equal(t, "b", out[1].Title)
	})

	t.Run("nil response", func(t *testing.T) {
		assert.Nil(t, MapToSearchResults(nil, 5))
	})
}
