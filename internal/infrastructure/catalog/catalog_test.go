package catalog

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/beautyai/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	c := Build(Config{Seed: 42, GeneratedPerCategory: 10})

	t.Run("contains seed and generated products", func(t *testing.T) {
		assert.Equal(t, len(seedProducts)+10*len(GeneratedCategories), c.Len())
	})

	t.Run("assigns sequential local ids", func(t *testing.T) {
		products := c.Products()
		assert.Equal(t, "local-0001", products[0].ID)
		for _, p := range products {
			assert.True(t, strings.HasPrefix(p.ID, "local-"), p.ID)
			assert.Equal(t, SourceName, p.Source)
		}
	})

	t.Run("has no duplicate names", func(t *testing.T) {
		seen := map[string]bool{}
		for _, p := range c.Products() {
			assert.False(t, seen[p.DedupeKey()], "duplicate %q", p.Name)
			seen[p.DedupeKey()] = true
		}
	})

	t.Run("is reproducible for a seed", func(t *testing.T) {
		again := Build(Config{Seed: 42, GeneratedPerCategory: 10})
		assert.Equal(t, c.Products(), again.Products())
	})

	t.Run("seed only", func(t *testing.T) {
		assert.Equal(t, len(seedProducts), Build(Config{}).Len())
	})
}

func TestCatalogProductsIsACopy(t *testing.T) {
	c := Build(Config{})
	products := c.Products()
	products[0].Name = "changed"
	assert.NotEqual(t, "changed", c.Products()[0].Name)
}

func TestSearch(t *testing.T) {
	c := Build(Config{})

	t.Run("tanning finds Bondi Sands foam", func(t *testing.T) {
		results := c.Search("tanning", "")
		var found *domain.Product
		for i := range results {
			if results[i].Name == "Bondi Sands Self Tanning Foam" {
				found = &results[i]
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, 24.00, found.Price)
		assert.Equal(t, "Bondi Sands", found.Brand)
	})

	t.Run("unknown query returns empty non-nil", func(t *testing.T) {
		results := c.Search("nonexistent-product-xyz", "")
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("skincare includes alias categories", func(t *testing.T) {
		categories := map[string]bool{}
		for _, p := range c.Search("skincare", "") {
			categories[p.Category] = true
		}
		for _, want := range []string{"Skincare", "Anti-Aging", "Eye Care", "K-Beauty"} {
			assert.True(t, categories[want], "missing category %s", want)
		}
	})

	t.Run("matches brand and country", func(t *testing.T) {
		for _, p := range c.Search("laneige", "") {
			assert.Equal(t, "Laneige", p.Brand)
		}
		assert.NotEmpty(t, c.Search("south korea", ""))
	})

	t.Run("is case insensitive", func(t *testing.T) {
		assert.Equal(t, c.Search("mascara", ""), c.Search("  MASCARA ", ""))
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, c.Search("", ""), c.Len())
	})

	t.Run("category filter", func(t *testing.T) {
		results := c.Search("", "Eyelashes")
		require.NotEmpty(t, results)
		for _, p := range results {
			assert.Equal(t, "Eyelashes", p.Category)
		}
	})

	t.Run("category filter expands aliases", func(t *testing.T) {
		results := c.Search("serum", "skincare")
		require.NotEmpty(t, results)
		for _, p := range results {
			assert.Contains(t, []string{"Skincare", "Anti-Aging", "Eye Care", "K-Beauty", "Clean Beauty"}, p.Category)
		}
	})
}

func TestCategories(t *testing.T) {
	c := New([]domain.Product{
		{Name: "A", Category: "Tanning"},
		{Name: "B", Category: "Eyelashes"},
		{Name: "C", Category: "Tanning"},
	}, nil)

	assert.Equal(t, []domain.CategoryCount{
		{Name: "Eyelashes", Count: 1},
		{Name: "Tanning", Count: 2},
	}, c.Categories())
}

func TestAliases(t *testing.T) {
	c := New(nil, map[string][]string{" Glow ": {"Tanning", " Skincare"}})

	assert.Equal(t, map[string][]string{"glow": {"tanning", "skincare"}}, c.Aliases())

	aliases := c.Aliases()
	aliases["glow"][0] = "changed"
	assert.Equal(t, "tanning", c.Aliases()["glow"][0])
}

func TestSource(t *testing.T) {
	c := Build(Config{})
	src := NewSource(c, "global")
	ctx := context.Background()

	assert.Equal(t, "local", src.Name())

	t.Run("sentinel returns the whole catalog", func(t *testing.T) {
		for _, q := range []string{"global", "GLOBAL", ""} {
			items, err := src.Fetch(ctx, domain.SourceQuery{Query: q, Limit: 5})
			require.NoError(t, err)
			assert.Len(t, items, c.Len(), "query %q", q)
		}
	})

	t.Run("maps products to raw items", func(t *testing.T) {
		items, err := src.Fetch(ctx, domain.SourceQuery{Query: "Bondi Sands Self Tanning Foam"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 24.00, items[0].Price)
		assert.Equal(t, "Australia", items[0].Country)
		assert.True(t, strings.HasPrefix(items[0].ID, "local-"))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.Fetch(cancelled, domain.SourceQuery{Query: "tanning"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGenerator(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))

	t.Run("known category uses its price band", func(t *testing.T) {
		items := gen.Generate("Eyelashes", 20)
		require.Len(t, items, 20)
		for i, item := range items {
			price, ok := item.Price.(float64)
			require.True(t, ok)
			assert.GreaterOrEqual(t, price, 5.0)
			assert.LessOrEqual(t, price, 25.0)
			assert.Equal(t, "Eyelashes", item.Category)
			assert.True(t, strings.HasSuffix(item.Name, "Eyelashes #"+strconv.Itoa(i+1)), item.Name)
			assert.Contains(t, generatorBrands, item.Brand)
			assert.Contains(t, generatorCountries, item.Country)
		}
	})

	t.Run("category lookup ignores case", func(t *testing.T) {
		for _, item := range gen.Generate("tanning", 10) {
			price := item.Price.(float64)
			assert.GreaterOrEqual(t, price, 15.0)
			assert.LessOrEqual(t, price, 50.0)
		}
	})

	t.Run("unknown category uses the fallback template", func(t *testing.T) {
		items := gen.Generate("Nail Polish", 5)
		require.Len(t, items, 5)
		for _, item := range items {
			assert.Contains(t, fallbackTemplate.descriptions, item.Description)
			assert.Equal(t, "Nail Polish", item.Category)
		}
	})

	t.Run("non-positive count", func(t *testing.T) {
		assert.Empty(t, gen.Generate("Tanning", 0))
		assert.Empty(t, gen.Generate("Tanning", -3))
	})
}
