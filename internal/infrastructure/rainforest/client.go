// Package rainforest searches Amazon listings through the Rainforest API
package rainforest

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

// SourceName is the name Rainforest results report
const SourceName = "rainforest"

const (
	defaultBaseURL      = "https://api.rainforestapi.com"
	defaultAmazonDomain = "amazon.com"
)

// Config configures the Rainforest client
type Config struct {
	APIKey       string
	BaseURL      string
	AmazonDomain string
	Timeout      time.Duration
	RetryMax     int
	// RatePerSecond caps outgoing requests; Rainforest bills per request
	RatePerSecond float64
}

// Client handles communication with the Rainforest API
type Client struct {
	http         *upstream.Client
	apiKey       string
	baseURL      string
	amazonDomain string
	logger       *zap.Logger
}

// NewClient creates a new Rainforest API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	domainName := cfg.AmazonDomain
	if domainName == "" {
		domainName = defaultAmazonDomain
	}
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 2
	}

	return &Client{
		http: upstream.NewClient(upstream.Options{
			Component:     SourceName,
			Timeout:       cfg.Timeout,
			RetryMax:      cfg.RetryMax,
			RatePerSecond: rps,
			Burst:         5,
			Logger:        logger,
		}),
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		amazonDomain: domainName,
		logger:       logger.With(zap.String("component", SourceName)),
	}
}

// Name returns "rainforest"
func (c *Client) Name() string { return SourceName }

// Search runs an Amazon search for term
func (c *Client) Search(ctx context.Context, term string) (*SearchResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: rainforest api key not configured", domain.ErrSourceDisabled)
	}

	params := url.Values{}
	params.Add("api_key", c.apiKey)
	params.Add("type", "search")
	params.Add("amazon_domain", c.amazonDomain)
	params.Add("search_term", term)

	reqURL := fmt.Sprintf("%s/request?%s", c.baseURL, params.Encode())

	var resp SearchResponse
	if err := c.http.GetJSON(ctx, "rainforest search", reqURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}

	if !resp.RequestInfo.Success && resp.RequestInfo.Message != "" {
		return nil, fmt.Errorf("%w: rainforest: %s", domain.ErrUpstreamFailure, resp.RequestInfo.Message)
	}

	c.logger.Debug("search completed", zap.String("term", term), zap.Int("results", len(resp.SearchResults)))
	return &resp, nil
}

// Fetch searches Amazon for the query, narrowed by category when one is given
func (c *Client) Fetch(ctx context.Context, q domain.SourceQuery) ([]domain.RawProduct, error) {
	term := strings.TrimSpace(q.Query)
	if category := strings.TrimSpace(q.Category); category != "" && !strings.Contains(strings.ToLower(term), strings.ToLower(category)) {
		term = strings.TrimSpace(term + " " + category)
	}
	if term == "" {
		return nil, nil
	}

	resp, err := c.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	items := MapSearchResults(resp.SearchResults, CountryForDomain(c.amazonDomain), q.Category)
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items, nil
}
