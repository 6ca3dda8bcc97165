// Package makeup queries the public Makeup API (makeup-api.herokuapp.com)
package makeup

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"github.com/beautyai/backend/internal/infrastructure/upstream"
	"go.uber.org/zap"
)

// SourceName is the name Makeup API results report
const SourceName = "makeup"

const defaultBaseURL = "https://makeup-api.herokuapp.com"

// Config configures the Makeup API client
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
}

// Client handles communication with the Makeup API
type Client struct {
	http    *upstream.Client
	baseURL string
	logger  *zap.Logger
}

// NewClient creates a new Makeup API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		http: upstream.NewClient(upstream.Options{
			Component: SourceName,
			Timeout:   cfg.Timeout,
			RetryMax:  cfg.RetryMax,
			Logger:    logger,
		}),
		baseURL: baseURL,
		logger:  logger.With(zap.String("component", SourceName)),
	}
}

// Name returns "makeup"
func (c *Client) Name() string { return SourceName }

// Products lists products filtered by params (product_type, brand, ...)
func (c *Client) Products(ctx context.Context, params url.Values) ([]Product, error) {
	reqURL := fmt.Sprintf("%s/api/v1/products.json?%s", c.baseURL, params.Encode())

	var products []Product
	if err := c.http.GetJSON(ctx, "makeup products", reqURL, nil, &products); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}

	c.logger.Debug("products fetched", zap.String("params", params.Encode()), zap.Int("results", len(products)))
	return products, nil
}

// Fetch looks the query up as a product type first and as a brand otherwise.
// The Makeup API has no free-text search, so an empty query makes no request.
func (c *Client) Fetch(ctx context.Context, q domain.SourceQuery) ([]domain.RawProduct, error) {
	params, ok := QueryParams(q)
	if !ok {
		return nil, nil
	}

	products, err := c.Products(ctx, params)
	if err != nil {
		return nil, err
	}

	items := MapProducts(products, q.Category)
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items, nil
}

// QueryParams translates a query into Makeup API filters. ok is false when
// there is nothing to filter on.
func QueryParams(q domain.SourceQuery) (url.Values, bool) {
	params := url.Values{}
	if productType := ProductType(q.Query + " " + q.Category); productType != "" {
		params.Set("product_type", productType)
		return params, true
	}

	brand := strings.ToLower(strings.TrimSpace(q.Query))
	if brand == "" {
		return nil, false
	}
	params.Set("brand", brand)
	return params, true
}
