package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beautyai/backend/internal/domain"
	"go.uber.org/zap"
)

// rawItem decodes one model-produced product leniently; price may be a number or a string
type rawItem struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Price       any    `json:"price"`
	Description string `json:"description"`
	Country     string `json:"country"`
	Category    string `json:"category"`
}

// ProductSource asks a language model for products matching a query
type ProductSource struct {
	completer domain.Completer
	logger    *zap.Logger
}

// NewProductSource wraps a completer as a product source named after the completer
func NewProductSource(completer domain.Completer, logger *zap.Logger) *ProductSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductSource{
		completer: completer,
		logger:    logger.With(zap.String("component", completer.Name())),
	}
}

// Name returns the completer's provider name
func (s *ProductSource) Name() string { return s.completer.Name() }

// Fetch prompts the model and decodes the JSON array in its reply.
// Items that do not decode are skipped; a reply without an array is an error.
func (s *ProductSource) Fetch(ctx context.Context, q domain.SourceQuery) ([]domain.RawProduct, error) {
	reply, err := s.completer.Complete(ctx, productSystemPrompt, buildProductPrompt(q))
	if err != nil {
		return nil, err
	}

	items, err := ParseProducts(reply)
	if err != nil {
		s.logger.Warn("unparseable product reply", zap.Int("reply_len", len(reply)), zap.Error(err))
		return nil, err
	}

	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items, nil
}

// ParseProducts extracts the product array from a model reply
func ParseProducts(reply string) ([]domain.RawProduct, error) {
	array, err := ExtractJSONArray(reply)
	if err != nil {
		return nil, err
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(array), &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoJSONArray, err)
	}

	products := make([]domain.RawProduct, 0, len(elements))
	for _, el := range elements {
		dec := json.NewDecoder(bytes.NewReader(el))
		dec.UseNumber()

		// null, scalars and unnamed objects are not products
		var item rawItem
		if err := dec.Decode(&item); err != nil || strings.TrimSpace(item.Name) == "" {
			continue
		}
		products = append(products, domain.RawProduct{
			Name:        item.Name,
			Brand:       item.Brand,
			Price:       item.Price,
			Description: item.Description,
			Country:     item.Country,
			Category:    item.Category,
		})
	}
	return products, nil
}
