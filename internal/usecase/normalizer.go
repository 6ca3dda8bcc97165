package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/beautyai/backend/internal/domain"
	"github.com/google/uuid"
)

// Defaults applied to fields a source leaves empty
const (
	DefaultBrand    = "Unknown Brand"
	DefaultCountry  = "Global"
	DefaultCategory = "Beauty"
)

var priceNoiseRegex = regexp.MustCompile(`[^0-9.]`)

// PriceBand is the range used when a source gives no usable price
type PriceBand struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// DefaultPriceBand applies to sources without a configured band
var DefaultPriceBand = PriceBand{Min: 10, Max: 100}

// RandSource is the subset of *rand.Rand used for shuffling and fallback prices.
// *rand.Rand satisfies it; the zero value falls back to the locked global source.
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Normalizer maps raw adapter items into canonical products
type Normalizer struct {
	bands map[string]PriceBand
	rng   RandSource
	newID func() string
}

// NewNormalizer creates a normalizer. bands is keyed by source name.
func NewNormalizer(bands map[string]PriceBand, rng RandSource) *Normalizer {
	if rng == nil {
		rng = globalRand{}
	}
	copied := make(map[string]PriceBand, len(bands))
	for k, v := range bands {
		copied[strings.ToLower(k)] = v
	}
	return &Normalizer{
		bands: copied,
		rng:   rng,
		newID: uuid.NewString,
	}
}

// NormalizeBatch normalizes every item of a batch, tagging each product with the batch source
func (n *Normalizer) NormalizeBatch(batch domain.SourceBatch) []domain.Product {
	products := make([]domain.Product, 0, len(batch.Items))
	for i, raw := range batch.Items {
		products = append(products, n.Normalize(batch.Source, i, raw))
	}
	return products
}

// Normalize produces a canonical Product. index is the item's 0-based position in its batch.
func (n *Normalizer) Normalize(source string, index int, raw domain.RawProduct) domain.Product {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = fmt.Sprintf("Beauty Product %d", index+1)
	}

	brand := strings.TrimSpace(raw.Brand)
	if brand == "" {
		brand = DefaultBrand
	}

	description := strings.TrimSpace(raw.Description)
	if description == "" {
		description = fmt.Sprintf("%s by %s", name, brand)
	}

	country := strings.TrimSpace(raw.Country)
	if country == "" {
		country = DefaultCountry
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		category = DefaultCategory
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = fmt.Sprintf("%s-%s", source, n.newID())
	}

	price, ok := ParsePrice(raw.Price)
	if !ok {
		price = n.fallbackPrice(source)
	}

	return domain.Product{
		ID:          id,
		Name:        name,
		Brand:       brand,
		Price:       price,
		Description: description,
		Country:     country,
		Category:    category,
		Source:      source,
	}
}

func (n *Normalizer) fallbackPrice(source string) float64 {
	band, ok := n.bands[strings.ToLower(source)]
	if !ok || band.Max <= band.Min || band.Min < 0 {
		band = DefaultPriceBand
	}
	return roundCents(band.Min + n.rng.Float64()*(band.Max-band.Min))
}

// ParsePrice coerces a raw price into a finite non-negative amount rounded to cents.
// Strings are stripped of everything but digits and the decimal point before parsing.
func ParsePrice(v any) (float64, bool) {
	var f float64
	switch p := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = p
	case float32:
		f = float64(p)
	case int:
		f = float64(p)
	case int64:
		f = float64(p)
	case json.Number:
		parsed, err := p.Float64()
		if err != nil {
			return parsePriceString(p.String())
		}
		f = parsed
	case string:
		return parsePriceString(p)
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return roundCents(f), true
}

func parsePriceString(s string) (float64, bool) {
	cleaned := priceNoiseRegex.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}
	// "1.299.00" style strings keep only the first decimal point
	if first := strings.Index(cleaned, "."); first >= 0 {
		cleaned = cleaned[:first+1] + strings.ReplaceAll(cleaned[first+1:], ".", "")
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return roundCents(f), true
}

func roundCents(f float64) float64 {
	return math.Round(f*100) / 100
}
