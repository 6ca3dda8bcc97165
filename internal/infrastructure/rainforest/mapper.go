package rainforest

import (
	"strings"

	"github.com/beautyai/backend/internal/domain"
	"github.com/google/uuid"
)

// SearchResponse is the subset of a Rainforest search response we use
type SearchResponse struct {
	RequestInfo struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	} `json:"request_info"`
	SearchResults []SearchResult `json:"search_results"`
}

// SearchResult is one Amazon listing
type SearchResult struct {
	ASIN  string `json:"asin"`
	Title string `json:"title"`
	Brand string `json:"brand"`
	Link  string `json:"link"`
	Price *Price `json:"price"`
	// Prices is filled instead of Price for some listings
	Prices []Price `json:"prices"`
}

// Price is a Rainforest price object
type Price struct {
	Symbol   string  `json:"symbol"`
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
	Raw      string  `json:"raw"`
}

var domainCountries = map[string]string{
	"amazon.com":    "USA",
	"amazon.co.uk":  "UK",
	"amazon.ca":     "Canada",
	"amazon.com.au": "Australia",
	"amazon.fr":     "France",
	"amazon.de":     "Germany",
	"amazon.co.jp":  "Japan",
	"amazon.ae":     "UAE",
	"amazon.ie":     "Ireland",
}

// CountryForDomain maps an Amazon marketplace to a country name, or "" when unknown
func CountryForDomain(amazonDomain string) string {
	return domainCountries[strings.ToLower(strings.TrimSpace(amazonDomain))]
}

// MapSearchResults converts listings to raw products. A listing repeated under
// the same ASIN (sponsored and organic) is kept once. Untitled listings are
// passed through for the normalizer to name.
func MapSearchResults(results []SearchResult, country, category string) []domain.RawProduct {
	products := make([]domain.RawProduct, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		asin := strings.TrimSpace(r.ASIN)
		id := "amazon-" + asin
		if asin == "" {
			id = "amazon-" + uuid.NewString()
		} else {
			if _, dup := seen[asin]; dup {
				continue
			}
			seen[asin] = struct{}{}
		}

		products = append(products, domain.RawProduct{
			ID:       id,
			Name:     strings.TrimSpace(r.Title),
			Brand:    strings.TrimSpace(r.Brand),
			Price:    resultPrice(r),
			Country:  country,
			Category: category,
		})
	}
	return products
}

// resultPrice prefers the numeric value and falls back to the raw string.
// nil means no usable price.
func resultPrice(r SearchResult) any {
	candidates := make([]Price, 0, 1+len(r.Prices))
	if r.Price != nil {
		candidates = append(candidates, *r.Price)
	}
	candidates = append(candidates, r.Prices...)

	for _, p := range candidates {
		if p.Value > 0 {
			return p.Value
		}
		if strings.TrimSpace(p.Raw) != "" {
			return p.Raw
		}
	}
	return nil
}
