package catalog

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/beautyai/backend/internal/domain"
)

// GeneratedCategories are the categories the startup fill covers
var GeneratedCategories = []string{"Tanning", "Eyelashes", "Lip Products", "Eye Care"}

var generatorBrands = []string{
	"Bondi Sands", "St. Tropez", "Tan-Luxe", "Isle of Paradise", "Vita Liberata",
	"Ardell", "Velour", "Huda Beauty", "Lilly Lashes", "Eylure", "Kiss", "Tarte",
	"MAC", "Dior", "Fenty Beauty", "Chanel", "NARS", "Yves Saint Laurent", "Maybelline",
	"Neutrogena", "Clinique", "La Roche-Posay", "Kiehl’s", "Estée Lauder", "Shiseido", "CeraVe", "The Ordinary", "Laneige", "Olay",
}

var generatorCountries = []string{"USA", "UK", "Australia", "France", "Japan", "South Korea", "Canada", "Ireland", "UAE"}

type template struct {
	minPrice, maxPrice float64
	descriptions       []string
}

// keyed by lowercased category
var templates = map[string]template{
	"tanning": {15, 50, []string{
		"Long-lasting self-tanner for a natural glow.",
		"Lightweight mousse for a streak-free tan.",
		"Hydrating tanning water with color-correcting actives.",
		"Customizable tanning drops for radiant skin.",
		"Moisturizing gradual tanner for daily use.",
	}},
	"eyelashes": {5, 25, []string{
		"Lightweight false eyelashes for daily wear.",
		"Premium mink lashes for dramatic effect.",
		"Bold lashes for glamorous looks.",
		"Easy-to-apply wispy lashes for a soft look.",
		"Cruelty-free lashes with bold volume.",
	}},
	"lip products": {10, 40, []string{
		"Vibrant, long-lasting matte lip color.",
		"High-shine gloss with hydrating formula.",
		"Universal lip luminizer for all skin tones.",
		"Hydrating lipstick with a satin finish.",
		"Intense matte color with long wear.",
	}},
	"eye care": {10, 60, []string{
		"Hydrating gel-cream for under-eye moisture.",
		"Reduces puffiness and dark circles.",
		"Soothing cream for sensitive eyes.",
		"Nourishing eye cream with avocado oil.",
		"Anti-aging eye serum for radiance.",
	}},
}

var fallbackTemplate = template{10, 60, []string{
	"Everyday essential for a simple beauty routine.",
	"Bestselling formula loved for its texture.",
	"Lightweight formula suitable for all skin types.",
}}

// RandSource is the randomness a Generator draws from. *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Generator builds template products for a category
type Generator struct {
	rng RandSource
}

// NewGenerator creates a generator. A nil rng uses the global source.
func NewGenerator(rng RandSource) *Generator {
	if rng == nil {
		rng = globalRand{}
	}
	return &Generator{rng: rng}
}

// Generate returns count products named "{brand} {category} #{i}".
// Unknown categories use a generic description set and a 10-60 price range.
func (g *Generator) Generate(category string, count int) []domain.RawProduct {
	category = strings.TrimSpace(category)
	tpl, ok := templates[strings.ToLower(category)]
	if !ok {
		tpl = fallbackTemplate
	}

	products := make([]domain.RawProduct, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		brand := generatorBrands[g.rng.IntN(len(generatorBrands))]
		price := tpl.minPrice + g.rng.Float64()*(tpl.maxPrice-tpl.minPrice)
		products = append(products, domain.RawProduct{
			Name:        fmt.Sprintf("%s %s #%d", brand, category, i),
			Brand:       brand,
			Price:       math.Round(price*100) / 100,
			Description: tpl.descriptions[g.rng.IntN(len(tpl.descriptions))],
			Country:     generatorCountries[g.rng.IntN(len(generatorCountries))],
			Category:    category,
		})
	}
	return products
}
