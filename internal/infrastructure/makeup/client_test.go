package makeup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsBody = `[
	{"id": 1048, "brand": "colourpop", "name": "Lippie Pencil", "price": "5.0", "price_sign": "$", "currency": "USD", "description": "Lippie Pencil\n  A long-wearing and high-intensity lip pencil", "product_type": "lip_liner", "category": "pencil"},
	{"id": 1047, "brand": null, "name": "Blotted Lip", "price": null, "price_sign": null, "description": null, "product_type": "lipstick", "category": "lipstick"},
	{"id": 1046, "brand": "nyx", "name": "  ", "price": "7.0", "product_type": "lipstick"}
]`

func newTestClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, Timeout: 2 * time.Second}, nil)
}

func TestNewClient(t *testing.T) {
	client := NewClient(Config{}, nil)

	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.NotNil(t, client.http)
	assert.Equal(t, "makeup", client.Name())
}

func TestProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products.json", r.URL.Path)
		assert.Equal(t, "lipstick", r.URL.Query().Get("product_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(productsBody))
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).Products(context.Background(), map[string][]string{"product_type": {"lipstick"}})

	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, 1048, products[0].ID)
	assert.Nil(t, products[1].Brand)
}

func TestProducts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Products(context.Background(), map[string][]string{"brand": {"nyx"}})

	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestFetch(t *testing.T) {
	var requests atomic.Int32
	var lastQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		lastQuery.Store(r.URL.RawQuery)
		_, _ = w.Write([]byte(productsBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	t.Run("product type query", func(t *testing.T) {
		items, err := client.Fetch(ctx, domain.SourceQuery{Query: "red lipstick"})

		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "product_type=lipstick", lastQuery.Load())
		assert.Equal(t, "makeup-1048", items[0].ID)
		assert.Equal(t, "$5.0", items[0].Price)
		assert.Equal(t, "Colourpop", items[0].Brand)
		assert.Equal(t, "Lip Liner", items[0].Category)
		assert.Nil(t, items[1].Price)
		assert.Equal(t, "makeup-1046", items[2].ID)
		assert.Empty(t, items[2].Name)
	})

	t.Run("brand query", func(t *testing.T) {
		_, err := client.Fetch(ctx, domain.SourceQuery{Query: "Maybelline"})
		require.NoError(t, err)
		assert.Equal(t, "brand=maybelline", lastQuery.Load())
	})

	t.Run("category names the type", func(t *testing.T) {
		items, err := client.Fetch(ctx, domain.SourceQuery{Query: "volume", Category: "Eyelashes", Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, "product_type=mascara", lastQuery.Load())
		require.Len(t, items, 1)
		assert.Equal(t, "Eyelashes", items[0].Category)
	})

	t.Run("empty query makes no request", func(t *testing.T) {
		before := requests.Load()
		items, err := client.Fetch(ctx, domain.SourceQuery{})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, before, requests.Load())
	})
}

func TestQueryParams(t *testing.T) {
	tests := []struct {
		name   string
		query  domain.SourceQuery
		want   string
		wantOK bool
	}{
		{"lip liner beats lipstick", domain.SourceQuery{Query: "nude lip liner"}, "product_type=lip_liner", true},
		{"nail polish", domain.SourceQuery{Query: "Nail Polish"}, "product_type=nail_polish", true},
		{"brow", domain.SourceQuery{Query: "brow gel"}, "product_type=eyebrow", true},
		{"brand fallback", domain.SourceQuery{Query: " NYX "}, "brand=nyx", true},
		{"blank", domain.SourceQuery{Query: "   "}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, ok := QueryParams(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, params.Encode())
			}
		})
	}
}

func TestMapProducts_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("velvet ", 100)
	got := MapProducts([]Product{{ID: 1, Name: "Velvet Matte", Description: &long, ProductType: "lipstick"}}, "")

	require.Len(t, got, 1)
	assert.True(t, strings.HasSuffix(got[0].Description, "..."))
	assert.LessOrEqual(t, len([]rune(got[0].Description)), maxDescriptionRunes+3)
	assert.Equal(t, "Lipstick", got[0].Category)
	assert.Empty(t, got[0].Brand)
}
