// Package catalog holds the local product catalog: curated seed products plus
// a deterministic generated fill, built once at startup and read-only afterwards.
package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/beautyai/backend/internal/domain"
	"github.com/samber/lo"
)

// SourceName is the name the local catalog reports as a product source
const SourceName = "local"

// DefaultAliases expands a query term into the categories it covers
var DefaultAliases = map[string][]string{
	"skincare": {"anti-aging", "eye care", "k-beauty", "clean beauty"},
	"makeup":   {"lip products", "eyelashes"},
	"lips":     {"lip products"},
	"lashes":   {"eyelashes"},
	"hair":     {"haircare"},
	"perfume":  {"fragrances"},
}

// Config controls how the catalog is built
type Config struct {
	// Seed makes the generated fill reproducible
	Seed uint64
	// GeneratedPerCategory is how many template products to add per GeneratedCategories entry
	GeneratedPerCategory int
	// Aliases overrides DefaultAliases when non-empty
	Aliases map[string][]string
}

// Catalog is an immutable list of products
type Catalog struct {
	products []domain.Product
	aliases  map[string][]string
}

// Build assembles the seed products and the generated fill. Ids are assigned
// in order as "local-0001", duplicates by normalized name are dropped.
func Build(cfg Config) *Catalog {
	all := make([]domain.Product, 0, len(seedProducts)+cfg.GeneratedPerCategory*len(GeneratedCategories))
	all = append(all, seedProducts...)

	if cfg.GeneratedPerCategory > 0 {
		gen := NewGenerator(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)))
		for _, category := range GeneratedCategories {
			for _, raw := range gen.Generate(category, cfg.GeneratedPerCategory) {
				price, _ := raw.Price.(float64)
				all = append(all, domain.Product{
					Name:        raw.Name,
					Brand:       raw.Brand,
					Price:       price,
					Description: raw.Description,
					Country:     raw.Country,
					Category:    raw.Category,
				})
			}
		}
	}

	all = lo.UniqBy(all, func(p domain.Product) string { return p.DedupeKey() })
	for i := range all {
		all[i].ID = fmt.Sprintf("local-%04d", i+1)
		all[i].Source = SourceName
	}

	return New(all, cfg.Aliases)
}

// New wraps products as given. A nil or empty alias map uses DefaultAliases.
func New(products []domain.Product, aliases map[string][]string) *Catalog {
	if len(aliases) == 0 {
		aliases = DefaultAliases
	}
	normalized := make(map[string][]string, len(aliases))
	for term, categories := range aliases {
		key := strings.ToLower(strings.TrimSpace(term))
		normalized[key] = lo.Map(categories, func(c string, _ int) string {
			return strings.ToLower(strings.TrimSpace(c))
		})
	}

	return &Catalog{
		products: append([]domain.Product(nil), products...),
		aliases:  normalized,
	}
}

// Products returns a copy of every product
func (c *Catalog) Products() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// Categories returns each category with its product count, sorted by name
func (c *Catalog) Categories() []domain.CategoryCount {
	counts := lo.CountValuesBy(c.products, func(p domain.Product) string { return p.Category })
	out := make([]domain.CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Aliases returns a copy of the alias table
func (c *Catalog) Aliases() map[string][]string {
	out := make(map[string][]string, len(c.aliases))
	for k, v := range c.aliases {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Search returns products containing the query, or one of its alias
// expansions, in any text field. An empty query matches everything.
// A non-empty category restricts results to that category or its aliases.
func (c *Catalog) Search(query, category string) []domain.Product {
	terms := c.expand(query)
	categories := c.expand(category)

	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if len(categories) > 0 && !lo.Contains(categories, strings.ToLower(p.Category)) {
			continue
		}
		if len(terms) > 0 && !matchesAny(p, terms) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// expand lowercases s and appends its aliases. Empty input yields nil.
func (c *Catalog) expand(s string) []string {
	term := strings.ToLower(strings.TrimSpace(s))
	if term == "" {
		return nil
	}
	return append([]string{term}, c.aliases[term]...)
}

func matchesAny(p domain.Product, terms []string) bool {
	fields := []string{
		strings.ToLower(p.Name),
		strings.ToLower(p.Brand),
		strings.ToLower(p.Description),
		strings.ToLower(p.Category),
		strings.ToLower(p.Country),
	}
	for _, term := range terms {
		for _, f := range fields {
			if strings.Contains(f, term) {
				return true
			}
		}
	}
	return false
}

// Source exposes the catalog as a product source
type Source struct {
	catalog  *Catalog
	sentinel string
}

// NewSource creates the local product source. Queries equal to sentinel
// (case-insensitive) return the whole catalog.
func NewSource(catalog *Catalog, sentinel string) *Source {
	return &Source{catalog: catalog, sentinel: strings.ToLower(strings.TrimSpace(sentinel))}
}

// Name returns "local"
func (s *Source) Name() string { return SourceName }

// Fetch returns every catalog product matching the query and category.
// The limit is ignored; the local catalog always answers in full.
func (s *Source) Fetch(ctx context.Context, q domain.SourceQuery) ([]domain.RawProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := strings.TrimSpace(q.Query)
	if s.sentinel != "" && strings.EqualFold(query, s.sentinel) {
		query = ""
	}

	matches := s.catalog.Search(query, q.Category)
	return lo.Map(matches, func(p domain.Product, _ int) domain.RawProduct {
		return domain.RawProduct{
			ID:          p.ID,
			Name:        p.Name,
			Brand:       p.Brand,
			Price:       p.Price,
			Description: p.Description,
			Country:     p.Country,
			Category:    p.Category,
		}
	}), nil
}
