package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// maxQueryLength caps what is forwarded to upstream search APIs
const maxQueryLength = 100

// QueryPreprocessor cleans raw search text before it reaches the sources
type QueryPreprocessor struct {
	logger *zap.Logger
}

// Compiled regex patterns for query preprocessing
var (
	// Matches size patterns like "1.7 fl oz", "50ml", "30 g", "100 ml"
	sizeQuantityPattern = regexp.MustCompile(`(?i)\b\d+\.?\d*\s*(fl\s*)?oz\b|\b\d+\.?\d*\s*(fl\s*)?ounces?\b|\b\d+\.?\d*\s*ml\b|\b\d+\.?\d*\s*g\b|\b\d+\.?\d*\s*grams?\b`)

	// Matches pack/count patterns like "3 pack", "pack of 2", "5 pairs", "2 ct"
	packCountPattern = regexp.MustCompile(`(?i)\b\d+[-\s]*(pack|pk|count|ct|pairs?)\b|\bpack\s*of\s*\d+\b|\bset\s*of\s*\d+\b`)

	// Characters that break upstream query strings
	unsafeQueryChars = regexp.MustCompile(`[<>{}\[\]\\^|"` + "`" + `]`)

	// Punctuation left alone between spaces after removals
	orphanedPunctuation = regexp.MustCompile(`\s+[,\-;:]+\s+|[,\-;:]+\s*$|^\s*[,\-;:]+`)

	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// queryNoiseWords are marketing terms that never narrow a beauty search
var queryNoiseWords = map[string]bool{
	"best":        true,
	"top":         true,
	"new":         true,
	"improved":    true,
	"premium":     true,
	"quality":     true,
	"amazing":     true,
	"favorite":    true,
	"favourite":   true,
	"bestseller":  true,
	"bestselling": true,
	"viral":       true,
	"trending":    true,
	"cheap":       true,
	"affordable":  true,
	"buy":         true,
	"please":      true,
	"recommend":   true,
	"show":        true,
	"find":        true,
	"me":          true,
	"some":        true,
	"good":        true,
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(logger *zap.Logger) *QueryPreprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryPreprocessor{logger: logger}
}

// PreprocessQuery removes sizes, pack counts, marketing words and unsafe characters.
// If cleanup would leave nothing, the trimmed original is returned so the user's intent survives.
func (p *QueryPreprocessor) PreprocessQuery(query string) string {
	original := strings.TrimSpace(query)
	if original == "" {
		return ""
	}

	cleaned := unsafeQueryChars.ReplaceAllString(original, " ")
	cleaned = sizeQuantityPattern.ReplaceAllString(cleaned, " ")
	cleaned = packCountPattern.ReplaceAllString(cleaned, " ")
	cleaned = removeNoiseWords(cleaned)
	cleaned = orphanedPunctuation.ReplaceAllString(cleaned, " ")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		cleaned = multiSpacePattern.ReplaceAllString(unsafeQueryChars.ReplaceAllString(original, " "), " ")
		cleaned = strings.TrimSpace(cleaned)
	}

	if len(cleaned) > maxQueryLength {
		cut := maxQueryLength
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut]
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
	}

	if cleaned != original {
		p.logger.Debug("query preprocessed", zap.String("input", original), zap.String("output", cleaned))
	}

	return cleaned
}

func removeNoiseWords(s string) string {
	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		clean := strings.Trim(strings.ToLower(word), ",.!?;:-'\"")
		if !queryNoiseWords[clean] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// ExtractKeywords returns the meaningful tokens of text ordered by importance:
// product-type terms first, then attribute terms, then the rest.
func (p *QueryPreprocessor) ExtractKeywords(text string) []string {
	tokens := tokenize(text)

	var high, medium, low []string
	for _, token := range tokens {
		switch {
		case productTerms[token]:
			high = append(high, token)
		case attributeTerms[token]:
			medium = append(medium, token)
		default:
			low = append(low, token)
		}
	}

	result := make([]string, 0, len(tokens))
	result = append(result, high...)
	result = append(result, medium...)
	result = append(result, low...)
	return result
}
