package llm

import (
	"encoding/json"
	"strings"

	"github.com/beautyai/backend/internal/domain"
)

// ExtractJSONArray returns the first balanced, valid JSON array in text.
// Models often wrap the array in prose or markdown fences; both are skipped.
func ExtractJSONArray(text string) (string, error) {
	for start := strings.IndexByte(text, '['); start >= 0; {
		if end := matchingBracket(text, start); end > start {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}

		next := strings.IndexByte(text[start+1:], '[')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", domain.ErrNoJSONArray
}

// matchingBracket returns the index of the ']' closing the '[' at start,
// ignoring brackets inside JSON strings, or -1.
func matchingBracket(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				if ch == ']' {
					return i
				}
				return -1
			}
			if depth < 0 {
				return -1
			}
		}
	}
	return -1
}
