package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls        int
	lastCategory string
}

func (g *fakeGenerator) Generate(category string, count int) []domain.RawProduct {
	g.calls++
	g.lastCategory = category
	items := make([]domain.RawProduct, count)
	for i := range items {
		items[i] = domain.RawProduct{
			Name:     fmt.Sprintf("Template %s #%d", category, i+1),
			Price:    12.5,
			Category: category,
		}
	}
	return items
}

func newTestGenerateService(gen ProductGenerator, sources ...domain.ProductSource) *GenerateService {
	return NewGenerateService(sources, gen, NewNormalizer(nil, nil), GenerateServiceConfig{SourceTimeout: 200 * time.Millisecond}, nil)
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("first language model source wins", func(t *testing.T) {
		claude := &fakeSource{name: "claude", items: raw("Glow Drops", "Tan Water")}
		openai := &fakeSource{name: "openai", items: raw("Unused")}
		gen := &fakeGenerator{}
		svc := newTestGenerateService(gen, claude, openai)

		result, err := svc.Generate(ctx, domain.GenerateRequest{Category: "Tanning", Count: 2})
		require.NoError(t, err)

		assert.Equal(t, "claude", result.Source)
		assert.Equal(t, "Tanning", result.Category)
		require.Len(t, result.Products, 2)
		for _, p := range result.Products {
			assert.Equal(t, "Tanning", p.Category, "uncategorized items take the requested category")
			assert.Equal(t, "claude", p.Source)
		}
		assert.Equal(t, int32(0), openai.calls.Load())
		assert.Equal(t, 0, gen.calls)
	})

	t.Run("sources see the category and count", func(t *testing.T) {
		claude := &fakeSource{name: "claude", items: raw("A")}
		svc := newTestGenerateService(&fakeGenerator{}, claude)

		_, err := svc.Generate(ctx, domain.GenerateRequest{Category: " Eyelashes ", Count: 7, Query: "wispy"})
		require.NoError(t, err)

		assert.Equal(t, domain.SourceQuery{Query: "wispy", Category: "Eyelashes", Limit: 7}, claude.lastQuery.Load())
	})

	t.Run("falls back to the template generator", func(t *testing.T) {
		claude := &fakeSource{name: "claude", err: errors.New("no key")}
		empty := &fakeSource{name: "openai"}
		gen := &fakeGenerator{}
		svc := newTestGenerateService(gen, claude, empty)

		result, err := svc.Generate(ctx, domain.GenerateRequest{Category: "Lip Products"})
		require.NoError(t, err)

		assert.Equal(t, SourceGenerator, result.Source)
		assert.Len(t, result.Products, DefaultGenerateCount)
		assert.Equal(t, "Lip Products", gen.lastCategory)
	})

	t.Run("no sources at all uses the generator", func(t *testing.T) {
		svc := newTestGenerateService(&fakeGenerator{})

		result, err := svc.Generate(ctx, domain.GenerateRequest{Category: "Eye Care", Count: 3})
		require.NoError(t, err)
		assert.Equal(t, SourceGenerator, result.Source)
		assert.Len(t, result.Products, 3)
	})

	t.Run("count is clamped", func(t *testing.T) {
		svc := newTestGenerateService(&fakeGenerator{})

		result, err := svc.Generate(ctx, domain.GenerateRequest{Category: "Tanning", Count: 500})
		require.NoError(t, err)
		assert.Len(t, result.Products, MaxGenerateCount)
	})

	t.Run("duplicates and overflow are trimmed", func(t *testing.T) {
		claude := &fakeSource{name: "claude", items: raw("Same", "same", "Other", "Third")}
		svc := newTestGenerateService(&fakeGenerator{}, claude)

		result, err := svc.Generate(ctx, domain.GenerateRequest{Category: "Makeup", Count: 2})
		require.NoError(t, err)

		require.Len(t, result.Products, 2)
		assert.Equal(t, "Same", result.Products[0].Name)
		assert.Equal(t, "Other", result.Products[1].Name)
	})

	t.Run("blank category is rejected", func(t *testing.T) {
		svc := newTestGenerateService(&fakeGenerator{})
		_, err := svc.Generate(ctx, domain.GenerateRequest{Category: "  "})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("expired request is a timeout", func(t *testing.T) {
		claude := &fakeSource{name: "claude", items: raw("A")}
		svc := newTestGenerateService(&fakeGenerator{}, claude)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.Generate(cancelled, domain.GenerateRequest{Category: "Tanning"})
		assert.ErrorIs(t, err, domain.ErrRequestTimeout)
	})
}
