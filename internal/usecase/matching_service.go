package usecase

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/beautyai/backend/internal/domain"
	"go.uber.org/zap"
)

var punctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Token weight categories for scoring
const (
	weightProduct     = 3.0
	weightAttribute   = 2.0
	weightDefault     = 1.0
	fuzzyWeightFactor = 0.8
)

// Scoring bonuses
const (
	brandMatchBonus     = 15.0
	categoryMatchBonus  = 10.0
	substringMatchBonus = 10.0
)

// productTerms name what a product is (weight 3.0)
var productTerms = map[string]bool{
	// Face
	"foundation": true, "concealer": true, "primer": true, "powder": true, "blush": true,
	"bronzer": true, "highlighter": true, "contour": true, "palette": true, "eyeshadow": true,
	// Lips
	"lipstick": true, "gloss": true, "lip": true, "lips": true, "liner": true, "balm": true, "stain": true,
	// Eyes
	"mascara": true, "eyeliner": true, "lashes": true, "lash": true, "eyelashes": true, "brow": true,
	"eyebrow": true, "eye": true, "eyes": true,
	// Skin
	"serum": true, "moisturizer": true, "cleanser": true, "toner": true, "mask": true,
	"sunscreen": true, "spf": true, "cream": true, "essence": true, "exfoliant": true, "retinol": true,
	"oil": true, "gel": true, "mist": true,
	// Body and sun
	"tan": true, "tanning": true, "tanner": true, "self": true, "bronzing": true, "mousse": true,
	"foam": true, "lotion": true,
	// Hair and scent
	"shampoo": true, "conditioner": true, "hair": true, "perfume": true, "fragrance": true, "cologne": true,
	// Categories
	"skincare": true, "makeup": true, "haircare": true,
}

// attributeTerms describe a need or finish (weight 2.0)
var attributeTerms = map[string]bool{
	// Skin types and concerns
	"dry": true, "oily": true, "sensitive": true, "combination": true, "acne": true,
	"wrinkles": true, "aging": true, "anti": true, "puffiness": true, "circles": true,
	"dark": true, "pores": true, "blemishes": true, "redness": true, "dull": true,
	// Finish and effect
	"matte": true, "dewy": true, "glossy": true, "satin": true, "shimmer": true,
	"natural": true, "glow": true, "radiant": true, "hydrating": true, "brightening": true,
	"volumizing": true, "lengthening": true, "waterproof": true, "wispy": true, "bold": true,
	"streak": true, "gradual": true, "longwear": true, "lasting": true,
	// Claims
	"vegan": true, "cruelty": true, "clean": true, "organic": true, "unscented": true,
	"vitamin": true, "niacinamide": true, "hyaluronic": true, "caffeine": true, "luxury": true,
}

// extendedStopWords includes basic English stop words plus chat and packaging noise
var extendedStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	"it": true, "as": true, "be": true, "was": true, "are": true,
	"my": true, "me": true, "i": true, "im": true, "you": true, "your": true,
	"what": true, "which": true, "can": true, "do": true, "does": true,
	"need": true, "want": true, "looking": true, "some": true, "any": true,
	"recommend": true, "suggest": true, "good": true, "best": true, "help": true,
	"please": true, "something": true, "products": true, "product": true,
	// Sizes and packaging
	"oz": true, "fl": true, "ml": true, "pack": true, "ct": true, "set": true,
	"bottle": true, "tube": true, "jar": true, "mini": true, "size": true,
}

// MatchConfig holds configuration for the matcher
type MatchConfig struct {
	MinScore            float64
	EnableFuzzyMatching bool
	FuzzyEditDistance   int
}

// MatchingService ranks catalog products against free text such as a chat message
type MatchingService struct {
	minScore            float64
	enableFuzzyMatching bool
	fuzzyEditDistance   int
	logger              *zap.Logger
}

// ScoredProduct is a product with its relevance score (0-100)
type ScoredProduct struct {
	Product       domain.Product
	Score         float64
	MatchedTokens []string
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig, logger *zap.Logger) *MatchingService {
	minScore := config.MinScore
	if minScore <= 0 {
		minScore = 20.0
	}

	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &MatchingService{
		minScore:            minScore,
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyEditDistance:   fuzzyDist,
		logger:              logger,
	}
}

// Recommend returns up to limit products scoring at or above the threshold, best first.
// Ties keep catalog order.
func (s *MatchingService) Recommend(ctx context.Context, text string, products []domain.Product, limit int) ([]domain.Product, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if limit <= 0 {
		return []domain.Product{}, nil
	}

	queryTokens := tokenize(text)
	if len(queryTokens) == 0 {
		return []domain.Product{}, nil
	}

	var scored []ScoredProduct
	for _, p := range products {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		score, matched := s.score(queryTokens, text, p)
		if score >= s.minScore {
			scored = append(scored, ScoredProduct{Product: p, Score: score, MatchedTokens: matched})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]domain.Product, 0, len(scored))
	for _, sp := range scored {
		out = append(out, sp.Product)
	}

	if len(scored) > 0 {
		s.logger.Debug("products matched",
			zap.Int("matched", len(out)),
			zap.String("top", scored[0].Product.Name),
			zap.Float64("top_score", scored[0].Score))
	}

	return out, nil
}

// score computes how well a product covers the query tokens.
// Weighted query-token coverage carries the base score; brand, category and
// substring hits add bonuses. The result is capped at 100.
func (s *MatchingService) score(queryTokens []string, rawQuery string, p domain.Product) (float64, []string) {
	productTokens := tokenize(strings.Join([]string{p.Name, p.Brand, p.Category, p.Description}, " "))
	if len(productTokens) == 0 {
		return 0, nil
	}

	productSet := make(map[string]bool, len(productTokens))
	for _, t := range productTokens {
		productSet[t] = true
	}

	var totalWeight, matchedWeight float64
	var matched []string
	seen := make(map[string]bool)
	for _, qt := range queryTokens {
		if seen[qt] {
			continue
		}
		seen[qt] = true

		w := tokenWeight(qt)
		totalWeight += w

		if productSet[qt] {
			matchedWeight += w
			matched = append(matched, qt)
			continue
		}

		if s.enableFuzzyMatching {
			for _, pt := range productTokens {
				if fuzzyTokenMatch(qt, pt, s.fuzzyEditDistance) {
					matchedWeight += w * fuzzyWeightFactor
					matched = append(matched, qt)
					break
				}
			}
		}
	}

	if totalWeight == 0 || len(matched) == 0 {
		return 0, nil
	}

	score := matchedWeight / totalWeight * 70

	queryLower := strings.ToLower(rawQuery)
	if brand := strings.ToLower(p.Brand); len(brand) > 2 && strings.Contains(queryLower, brand) {
		score += brandMatchBonus
	}
	if category := strings.ToLower(p.Category); len(category) > 2 && strings.Contains(queryLower, category) {
		score += categoryMatchBonus
	}
	if name := strings.ToLower(p.Name); len(name) > 3 && strings.Contains(queryLower, name) {
		score += substringMatchBonus
	}

	if score > 100 {
		score = 100
	}
	return score, matched
}

func tokenWeight(token string) float64 {
	switch {
	case productTerms[token]:
		return weightProduct
	case attributeTerms[token]:
		return weightAttribute
	default:
		return weightDefault
	}
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words and pure numeric tokens.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")
	words := strings.Fields(cleaned)

	var tokens []string
	for _, word := range words {
		if len(word) <= 1 {
			continue
		}
		if extendedStopWords[word] {
			continue
		}
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// short tokens produce too many false positives
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
