package rainforest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
	"request_info": {"success": true},
	"search_results": [
		{"asin": "B07FKX5L3P", "title": "Bondi Sands Self Tanning Foam", "brand": "Bondi Sands", "price": {"symbol": "$", "value": 19.99, "currency": "USD", "raw": "$19.99"}},
		{"asin": "B01N9SPQHQ", "title": "St. Tropez Classic Bronzing Mousse", "prices": [{"raw": "$35.00"}]},
		{"asin": "B000000000", "title": "Tan-Luxe Drops"},
		{"asin": "B000000001", "title": "   "}
	]
}`

func newTestClient(baseURL string) *Client {
	return NewClient(Config{APIKey: "test-api-key", BaseURL: baseURL, Timeout: 2 * time.Second, RatePerSecond: 100}, nil)
}

func TestNewClient(t *testing.T) {
	client := NewClient(Config{APIKey: "test-api-key"}, nil)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.Equal(t, "amazon.com", client.amazonDomain)
	assert.NotNil(t, client.http)
	assert.Equal(t, "rainforest", client.Name())
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/request", r.URL.Path)
		assert.Equal(t, "test-api-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "search", r.URL.Query().Get("type"))
		assert.Equal(t, "amazon.com", r.URL.Query().Get("amazon_domain"))
		assert.Equal(t, "self tanner", r.URL.Query().Get("search_term"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Search(context.Background(), "self tanner")

	require.NoError(t, err)
	assert.Len(t, result.SearchResults, 4)
	assert.Equal(t, "B07FKX5L3P", result.SearchResults[0].ASIN)
}

func TestSearch_MissingKey(t *testing.T) {
	client := NewClient(Config{}, nil)

	_, err := client.Search(context.Background(), "serum")

	assert.ErrorIs(t, err, domain.ErrSourceDisabled)
}

func TestSearch_ClientError_NoRetry(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"request_info":{"success":false,"message":"Invalid API key"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", BaseURL: server.URL, RetryMax: 3}, nil)
	_, err := client.Search(context.Background(), "serum")

	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestSearch_UnsuccessfulRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"request_info":{"success":false,"message":"No credits remaining"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "serum")

	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Contains(t, err.Error(), "No credits remaining")
}

func TestSearch_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "serum")

	assert.Error(t, err)
}

func TestSearch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).Search(ctx, "serum")

	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	var lastTerm atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastTerm.Store(r.URL.Query().Get("search_term"))
		_, _ = w.Write([]byte(searchBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	t.Run("maps results and applies the limit", func(t *testing.T) {
		items, err := client.Fetch(ctx, domain.SourceQuery{Query: "tanning", Limit: 2})

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "amazon-B07FKX5L3P", items[0].ID)
		assert.Equal(t, 19.99, items[0].Price)
		assert.Equal(t, "USA", items[0].Country)
		assert.Equal(t, "$35.00", items[1].Price)
	})

	t.Run("adds the category to the search term", func(t *testing.T) {
		_, err := client.Fetch(ctx, domain.SourceQuery{Query: "foam", Category: "Tanning"})
		require.NoError(t, err)
		assert.Equal(t, "foam Tanning", lastTerm.Load())
	})

	t.Run("does not repeat a category already in the query", func(t *testing.T) {
		_, err := client.Fetch(ctx, domain.SourceQuery{Query: "tanning foam", Category: "Tanning"})
		require.NoError(t, err)
		assert.Equal(t, "tanning foam", lastTerm.Load())
	})

	t.Run("empty query makes no request", func(t *testing.T) {
		lastTerm.Store("untouched")
		items, err := client.Fetch(ctx, domain.SourceQuery{})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, "untouched", lastTerm.Load())
	})
}
