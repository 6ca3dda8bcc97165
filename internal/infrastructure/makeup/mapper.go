package makeup

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/beautyai/backend/internal/domain"
)

const maxDescriptionRunes = 280

// Product is one Makeup API product
type Product struct {
	ID          int     `json:"id"`
	Brand       *string `json:"brand"`
	Name        string  `json:"name"`
	Price       *string `json:"price"`
	PriceSign   *string `json:"price_sign"`
	Currency    *string `json:"currency"`
	Description *string `json:"description"`
	ProductType string  `json:"product_type"`
	Category    *string `json:"category"`
}

// productTypes maps query keywords to Makeup API product_type values.
// Multi-word keywords are listed first so "lip liner" beats "lip".
var productTypes = []struct {
	keyword     string
	productType string
}{
	{"nail polish", "nail_polish"},
	{"lip liner", "lip_liner"},
	{"lip_liner", "lip_liner"},
	{"nail_polish", "nail_polish"},
	{"lipstick", "lipstick"},
	{"lip gloss", "lipstick"},
	{"lip products", "lipstick"},
	{"mascara", "mascara"},
	{"eyelash", "mascara"},
	{"lashes", "mascara"},
	{"eyeliner", "eyeliner"},
	{"eyeshadow", "eyeshadow"},
	{"eye shadow", "eyeshadow"},
	{"eyebrow", "eyebrow"},
	{"brow", "eyebrow"},
	{"foundation", "foundation"},
	{"bronzer", "bronzer"},
	{"tanning", "bronzer"},
	{"blush", "blush"},
}

// ProductType returns the Makeup API product_type named in text, or "" if none
func ProductType(text string) string {
	text = strings.ToLower(text)
	for _, pt := range productTypes {
		if strings.Contains(text, pt.keyword) {
			return pt.productType
		}
	}
	return ""
}

// MapProducts converts Makeup API products to raw products. category
// overrides the upstream product type when set. Unnamed products are kept
// for the normalizer to name.
func MapProducts(products []Product, category string) []domain.RawProduct {
	items := make([]domain.RawProduct, 0, len(products))
	for _, p := range products {
		cat := category
		if cat == "" {
			cat = typeLabel(p.ProductType)
		}

		var price any
		if v := deref(p.Price); v != "" {
			price = deref(p.PriceSign) + v
		}

		items = append(items, domain.RawProduct{
			ID:          fmt.Sprintf("makeup-%d", p.ID),
			Name:        strings.TrimSpace(p.Name),
			Brand:       brandLabel(deref(p.Brand)),
			Price:       price,
			Description: truncate(deref(p.Description), maxDescriptionRunes),
			Category:    cat,
		})
	}
	return items
}

// typeLabel turns "lip_liner" into "Lip Liner"
func typeLabel(productType string) string {
	return titleWords(strings.ReplaceAll(productType, "_", " "))
}

// brandLabel capitalizes the lowercase brand names the API returns
func brandLabel(brand string) string {
	return titleWords(brand)
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + "..."
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
