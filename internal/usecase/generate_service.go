package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"go.uber.org/zap"
)

// SourceGenerator names products built from templates instead of a language model
const SourceGenerator = "generator"

// Generate request bounds
const (
	DefaultGenerateCount = 10
	MaxGenerateCount     = 50
)

// ProductGenerator produces template products when no language model is available
type ProductGenerator interface {
	Generate(category string, count int) []domain.RawProduct
}

// GenerateServiceConfig holds configuration for the generate service
type GenerateServiceConfig struct {
	SourceTimeout time.Duration
}

// GenerateService expands the catalog with synthetic products for a category
type GenerateService struct {
	sources    []domain.ProductSource
	generator  ProductGenerator
	normalizer *Normalizer
	logger     *zap.Logger
	timeout    time.Duration
}

// NewGenerateService creates a generate service. sources are language-model product
// sources tried in order; generator is the last resort and must not be nil.
func NewGenerateService(
	sources []domain.ProductSource,
	generator ProductGenerator,
	normalizer *Normalizer,
	config GenerateServiceConfig,
	logger *zap.Logger,
) *GenerateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := config.SourceTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GenerateService{
		sources:    sources,
		generator:  generator,
		normalizer: normalizer,
		logger:     logger,
		timeout:    timeout,
	}
}

// Generate returns up to Count products for the category, deduplicated and normalized.
// Count defaults to DefaultGenerateCount and is clamped to [1, MaxGenerateCount].
func (s *GenerateService) Generate(ctx context.Context, request domain.GenerateRequest) (*domain.GenerateResult, error) {
	category := strings.TrimSpace(request.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrInvalidRequest)
	}

	count := request.Count
	if count <= 0 {
		count = DefaultGenerateCount
	}
	if count > MaxGenerateCount {
		count = MaxGenerateCount
	}

	batch, err := firstProducts(ctx, s.sources, s.timeout, domain.SourceQuery{
		Query:    strings.TrimSpace(request.Query),
		Category: category,
		Limit:    count,
	}, s.logger)
	if err != nil && errors.Is(err, domain.ErrRequestTimeout) {
		return nil, err
	}
	if err != nil || len(batch.Items) == 0 {
		batch = domain.SourceBatch{
			Source: SourceGenerator,
			Items:  s.generator.Generate(category, count),
		}
	}

	products := s.normalizer.NormalizeBatch(batch)
	for i := range products {
		// items without a category belong to the requested one
		if products[i].Category == DefaultCategory {
			products[i].Category = category
		}
	}
	products = Dedupe(products)
	if len(products) > count {
		products = products[:count]
	}

	s.logger.Info("products generated",
		zap.String("category", category),
		zap.String("source", batch.Source),
		zap.Int("count", len(products)))

	return &domain.GenerateResult{
		Products: products,
		Category: category,
		Source:   batch.Source,
	}, nil
}
