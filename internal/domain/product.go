package domain

import (
	"strings"
	"unicode"
)

// Product is the canonical record every source is mapped into
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Country     string  `json:"country"`
	Category    string  `json:"category"`
	Source      string  `json:"source"`
}

// DedupeKey returns the lowercase alphanumeric form of the product name
func (p Product) DedupeKey() string {
	return DedupeKey(p.Name)
}

// DedupeKey normalizes a product name for duplicate detection.
func DedupeKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RawProduct is the adapter-side shape before normalization.
// Price may hold a float64, an int, a json.Number, a string with currency symbols, or nil.
type RawProduct struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Price       any    `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
	Country     string `json:"country,omitempty"`
	Category    string `json:"category,omitempty"`
}

// SourceQuery is what every adapter receives
type SourceQuery struct {
	Query    string
	Context  string
	Category string
	Limit    int
}

// SourceBatch is one adapter's raw output tagged with the adapter name
type SourceBatch struct {
	Source string
	Items  []RawProduct
}

// SourceReport records how a single adapter fared for a request
type SourceReport struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	OK         bool   `json:"ok"`
	DurationMS int64  `json:"durationMs"`
	Error      string `json:"-"`
}

// SearchRequest represents a product search request
type SearchRequest struct {
	Query    string
	Category string
	Page     int
	Limit    int
}

// Pagination describes the page returned out of the full result set
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalProducts int  `json:"totalProducts"`
	Limit         int  `json:"limit"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
}

// SearchStats is reported next to every product list
type SearchStats struct {
	ProductCount  int            `json:"productCount"`
	ReturnedCount int            `json:"returnedCount"`
	Source        string         `json:"source"`
	Sources       map[string]int `json:"sources"`
	Cached        bool           `json:"cached"`
}

// SearchResult is the outcome of a search
type SearchResult struct {
	Query      string      `json:"query"`
	Products   []Product   `json:"products"`
	Stats      SearchStats `json:"stats"`
	Pagination Pagination  `json:"pagination"`
}

// ChatRequest represents a chat request from the frontend
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// ChatResponse carries the advice text and recommended catalog products
type ChatResponse struct {
	Response string    `json:"response"`
	Provider string    `json:"provider"`
	Products []Product `json:"products"`
}

// GenerateRequest asks for a synthetic catalog expansion
type GenerateRequest struct {
	Category string `json:"category"`
	Count    int    `json:"count,omitempty"`
	Query    string `json:"query,omitempty"`
}

// GenerateResult holds generated products and which source produced them
type GenerateResult struct {
	Products []Product `json:"products"`
	Category string    `json:"category"`
	Source   string    `json:"source"`
}

// CategoryCount is a catalog category with its product count
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
