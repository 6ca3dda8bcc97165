package usecase

import (
	"github.com/beautyai/backend/internal/domain"
)

// Shuffle returns a Fisher–Yates shuffled copy of products
func Shuffle(products []domain.Product, rng RandSource) []domain.Product {
	if rng == nil {
		rng = globalRand{}
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Paginate slices out one page. page is 1-based; limit must be positive.
// A page past the end yields an empty slice with the true totals still reported.
func Paginate(products []domain.Product, page, limit int) ([]domain.Product, domain.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(products)
	totalPages := (total + limit - 1) / limit

	start := total
	if page-1 <= total/limit {
		start = min((page-1)*limit, total)
	}
	end := start + limit
	if end > total {
		end = total
	}

	pageItems := make([]domain.Product, end-start)
	copy(pageItems, products[start:end])

	return pageItems, domain.Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProducts: total,
		Limit:         limit,
		HasNextPage:   page < totalPages,
		HasPrevPage:   page > 1,
	}
}
