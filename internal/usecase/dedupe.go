package usecase

import (
	"github.com/beautyai/backend/internal/domain"
	"github.com/samber/lo"
)

// Dedupe drops products whose normalized name or id was already seen.
// The first occurrence wins, so callers control precedence through input order.
func Dedupe(products []domain.Product) []domain.Product {
	names := make(map[string]struct{}, len(products))
	ids := make(map[string]struct{}, len(products))

	return lo.Filter(products, func(p domain.Product, _ int) bool {
		key := p.DedupeKey()
		if key == "" {
			// names made only of symbols still need a stable key
			key = "id:" + p.ID
		}
		if _, dup := names[key]; dup {
			return false
		}
		if p.ID != "" {
			if _, dup := ids[p.ID]; dup {
				return false
			}
			ids[p.ID] = struct{}{}
		}
		names[key] = struct{}{}
		return true
	})
}
