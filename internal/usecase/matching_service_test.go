package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/beautyai/backend/internal/domain"
)

func matchCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Bondi Sands Self Tanning Foam", Brand: "Bondi Sands", Category: "Tanning", Description: "Long-lasting self-tanner for a natural, streak-free glow."},
		{ID: "2", Name: "Ardell Natural Lash Set", Brand: "Ardell", Category: "Eyelashes", Description: "Lightweight false eyelashes for daily wear."},
		{ID: "3", Name: "Clinique All About Eyes", Brand: "Clinique", Category: "Eye Care", Description: "Reduces puffiness and dark circles."},
		{ID: "4", Name: "L'Oréal Voluminous Lash Paradise Mascara", Brand: "L'Oréal", Category: "Eyelashes", Description: "Volumizing mascara for bold lashes."},
	}
}

func TestNewMatchingService(t *testing.T) {
	t.Run("creates service with provided threshold", func(t *testing.T) {
		svc := NewMatchingService(MatchConfig{MinScore: 50}, nil)
		if svc.minScore != 50 {
			t.Errorf("minScore = %v, want 50", svc.minScore)
		}
	})

	t.Run("uses defaults when zero", func(t *testing.T) {
		svc := NewMatchingService(MatchConfig{}, nil)
		if svc.minScore != 20 {
			t.Errorf("minScore = %v, want 20 (default)", svc.minScore)
		}
		if svc.fuzzyEditDistance != 1 {
			t.Errorf("fuzzyEditDistance = %v, want 1 (default)", svc.fuzzyEditDistance)
		}
	})
}

func TestRecommend(t *testing.T) {
	svc := NewMatchingService(MatchConfig{}, nil)
	ctx := context.Background()

	t.Run("returns error for empty text", func(t *testing.T) {
		_, err := svc.Recommend(ctx, "   ", matchCatalog(), 5)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("finds tanning product", func(t *testing.T) {
		got, err := svc.Recommend(ctx, "I need a self tanning foam", matchCatalog(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != "1" {
			t.Errorf("got %v, want only product 1", got)
		}
	})

	t.Run("matches on description terms", func(t *testing.T) {
		got, err := svc.Recommend(ctx, "something for dark circles and puffiness", matchCatalog(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) == 0 || got[0].ID != "3" {
			t.Errorf("got %v, want product 3 first", got)
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		got, err := svc.Recommend(ctx, "lashes mascara eyelashes", matchCatalog(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("len = %d, want 1", len(got))
		}
	})

	t.Run("zero limit returns empty", func(t *testing.T) {
		got, err := svc.Recommend(ctx, "mascara", matchCatalog(), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("unrelated text matches nothing", func(t *testing.T) {
		got, err := svc.Recommend(ctx, "garden hose", matchCatalog(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %v, want none", got)
		}
	})

	t.Run("honors cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.Recommend(cancelled, "mascara", matchCatalog(), 5)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestScoreBonuses(t *testing.T) {
	svc := NewMatchingService(MatchConfig{}, nil)
	p := matchCatalog()[0]

	plain, _ := svc.score(tokenize("tanning foam"), "tanning foam", p)
	withBrand, _ := svc.score(tokenize("bondi sands tanning foam"), "bondi sands tanning foam", p)

	if withBrand <= plain {
		t.Errorf("brand mention should raise score: plain=%v withBrand=%v", plain, withBrand)
	}
	if withBrand > 100 {
		t.Errorf("score = %v, want <= 100", withBrand)
	}
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{"lowercases and splits", "Matte LIPSTICK", []string{"matte", "lipstick"}},
		{"drops apostrophe fragments", "Kiehl’s Creamy Eye Treatment", []string{"kiehl", "creamy", "eye", "treatment"}},
		{"filters stop words, units and numbers", "50 ml serum for dry skin", []string{"serum", "dry", "skin"}},
		{"empty", "", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenize(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("tokenize(%q) = %v, want %v", tc.input, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("tokenize(%q)[%d] = %q, want %q", tc.input, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestTokenWeight(t *testing.T) {
	testCases := []struct {
		token string
		want  float64
	}{
		{"mascara", weightProduct},
		{"matte", weightAttribute},
		{"paradise", weightDefault},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			if got := tokenWeight(tc.token); got != tc.want {
				t.Errorf("tokenWeight(%q) = %v, want %v", tc.token, got, tc.want)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"123", true},
		{"0", true},
		{"12a", false},
		{"", false},
		{"1.5", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := isNumeric(tc.input); got != tc.want {
				t.Errorf("isNumeric(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	testCases := []struct {
		s1   string
		s2   string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"abc", "abc", 0},
		{"abc", "abd", 1},        // substitution
		{"abc", "abcd", 1},       // insertion
		{"abcd", "abc", 1},       // deletion
		{"kitten", "sitting", 3}, // classic example
		{"mascara", "mascarra", 1},
		{"crème", "creme", 1}, // runes, not bytes
	}

	for _, tc := range testCases {
		t.Run(tc.s1+"_"+tc.s2, func(t *testing.T) {
			got := levenshteinDistance(tc.s1, tc.s2)
			if got != tc.want {
				t.Errorf("levenshteinDistance(%q, %q) = %v, want %v", tc.s1, tc.s2, got, tc.want)
			}
		})
	}
}

func TestFuzzyTokenMatch(t *testing.T) {
	testCases := []struct {
		token1    string
		token2    string
		threshold int
		want      bool
	}{
		{"serum", "serum", 1, true},
		{"lip", "lap", 1, false}, // too short for fuzzy
		{"mascara", "mascarra", 1, true},
		{"lipstick", "lipstik", 1, true},
		{"foundation", "foundaton", 1, true},
		{"serum", "cream", 1, false},
		{"eyeliner", "eyelnr", 1, false}, // edit distance 2
		{"eyeliner", "eyelnr", 2, true},
	}

	for _, tc := range testCases {
		t.Run(tc.token1+"_"+tc.token2, func(t *testing.T) {
			got := fuzzyTokenMatch(tc.token1, tc.token2, tc.threshold)
			if got != tc.want {
				t.Errorf("fuzzyTokenMatch(%q, %q, %d) = %v, want %v",
					tc.token1, tc.token2, tc.threshold, got, tc.want)
			}
		})
	}
}

func TestFuzzyMatchingEnabled(t *testing.T) {
	ctx := context.Background()

	t.Run("finds misspelled product when enabled", func(t *testing.T) {
		svc := NewMatchingService(MatchConfig{EnableFuzzyMatching: true}, nil)
		got, err := svc.Recommend(ctx, "mascarra", matchCatalog(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != "4" {
			t.Errorf("got %v, want product 4", got)
		}
	})

	t.Run("misses misspelled product when disabled", func(t *testing.T) {
		svc := NewMatchingService(MatchConfig{}, nil)
		got, err := svc.Recommend(ctx, "mascarra", matchCatalog(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %v, want none", got)
		}
	})
}
