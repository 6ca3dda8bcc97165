package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"go.uber.org/zap"
)

// Package-level compiled regex patterns for cache keys
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL time.Duration
	// DegradedCacheTTL is used instead of CacheTTL when a remote source failed
	DegradedCacheTTL time.Duration
	DefaultLimit     int
	MaxLimit         int
	GlobalSentinel   string
	// RemoteLimit is how many products each remote source is asked for
	RemoteLimit int
}

// SearchService runs the aggregation pipeline with a result cache in front of it
type SearchService struct {
	cache        domain.CacheRepository
	aggregator   *Aggregator
	normalizer   *Normalizer
	preprocessor *QueryPreprocessor
	rng          RandSource
	logger       *zap.Logger

	cacheTTL       time.Duration
	degradedTTL    time.Duration
	defaultLimit   int
	maxLimit       int
	globalSentinel string
	remoteLimit    int
}

// cachedSearch is what gets stored per normalized query
type cachedSearch struct {
	Products []domain.Product     `json:"products"`
	Reports  []domain.SourceReport `json:"reports"`
}

// NewSearchService creates a new search service with dependencies.
// cache may be nil, in which case every search runs the full pipeline.
func NewSearchService(
	cache domain.CacheRepository,
	aggregator *Aggregator,
	normalizer *Normalizer,
	rng RandSource,
	config SearchServiceConfig,
	logger *zap.Logger,
) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = globalRand{}
	}

	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	degradedTTL := config.DegradedCacheTTL
	if degradedTTL <= 0 {
		degradedTTL = 30 * time.Second
	}
	if degradedTTL > cacheTTL {
		degradedTTL = cacheTTL
	}
	defaultLimit := config.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	maxLimit := config.MaxLimit
	if maxLimit <= 0 {
		maxLimit = 100
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	sentinel := strings.ToLower(strings.TrimSpace(config.GlobalSentinel))
	if sentinel == "" {
		sentinel = "global"
	}
	remoteLimit := config.RemoteLimit
	if remoteLimit <= 0 {
		remoteLimit = 10
	}

	return &SearchService{
		cache:          cache,
		aggregator:     aggregator,
		normalizer:     normalizer,
		preprocessor:   NewQueryPreprocessor(logger),
		rng:            rng,
		logger:         logger,
		cacheTTL:       cacheTTL,
		degradedTTL:    degradedTTL,
		defaultLimit:   defaultLimit,
		maxLimit:       maxLimit,
		globalSentinel: sentinel,
		remoteLimit:    remoteLimit,
	}
}

// Search looks up products for a query.
// Flow: preprocess -> cache -> fan out -> normalize -> dedupe -> shuffle -> cache -> paginate
func (s *SearchService) Search(ctx context.Context, request domain.SearchRequest) (*domain.SearchResult, error) {
	if request.Page < 0 || request.Limit < 0 {
		return nil, fmt.Errorf("%w: page and limit must not be negative", domain.ErrInvalidRequest)
	}

	page := request.Page
	if page == 0 {
		page = 1
	}
	limit := request.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	query := s.preprocessor.PreprocessQuery(request.Query)
	category := strings.TrimSpace(request.Category)
	skipRemote := s.IsGlobal(query)

	cacheKey := s.generateCacheKey(query, category)

	entry, cached := s.getFromCache(ctx, cacheKey)
	if !cached {
		result, err := s.aggregator.Aggregate(ctx, domain.SourceQuery{
			Query:    query,
			Category: category,
			Limit:    s.remoteLimit,
		}, skipRemote)
		if err != nil {
			return nil, err
		}

		entry = &cachedSearch{
			Products: Shuffle(s.merge(result.Batches), s.rng),
			Reports:  result.Reports,
		}

		if err := s.setInCache(ctx, cacheKey, entry); err != nil {
			s.logger.Warn("failed to cache search result", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	pageItems, pagination := Paginate(entry.Products, page, limit)

	return &domain.SearchResult{
		Query:      request.Query,
		Products:   pageItems,
		Stats:      buildStats(entry, len(pageItems), cached),
		Pagination: pagination,
	}, nil
}

// IsGlobal reports whether a query asks for the whole local catalog without paid lookups
func (s *SearchService) IsGlobal(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return q == "" || q == s.globalSentinel
}

// merge normalizes batches in fan-out order and removes duplicates
func (s *SearchService) merge(batches []domain.SourceBatch) []domain.Product {
	var all []domain.Product
	for _, batch := range batches {
		all = append(all, s.normalizer.NormalizeBatch(batch)...)
	}
	return Dedupe(all)
}

func buildStats(entry *cachedSearch, returned int, cached bool) domain.SearchStats {
	var succeeded []string
	perSource := make(map[string]int, len(entry.Reports))
	for _, r := range entry.Reports {
		perSource[r.Name] = r.Count
		if r.OK {
			succeeded = append(succeeded, r.Name)
		}
	}

	source := strings.Join(succeeded, "+")
	if source == "" {
		source = "none"
	}

	return domain.SearchStats{
		ProductCount:  len(entry.Products),
		ReturnedCount: returned,
		Source:        source,
		Sources:       perSource,
		Cached:        cached,
	}
}

// generateCacheKey creates a normalized cache key.
// Format: "search:{normalized_query}:{normalized_category}"
func (s *SearchService) generateCacheKey(query, category string) string {
	return fmt.Sprintf("search:%s:%s", normalizeForCacheKey(query), normalizeForCacheKey(category))
}

// normalizeForCacheKey normalizes a string for use as cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

func (s *SearchService) getFromCache(ctx context.Context, key string) (*cachedSearch, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var entry cachedSearch
	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return &entry, true
}

func (s *SearchService) setInCache(ctx context.Context, key string, entry *cachedSearch) error {
	if s.cache == nil {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return s.cache.Set(ctx, key, data, s.entryTTL(entry))
}

// entryTTL keeps partial results only briefly so a recovered source is asked again soon
func (s *SearchService) entryTTL(entry *cachedSearch) time.Duration {
	for _, r := range entry.Reports {
		if !r.OK {
			return s.degradedTTL
		}
	}
	return s.cacheTTL
}
