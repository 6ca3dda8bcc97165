package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"go.uber.org/zap"
)

// ProviderLocal names replies that did not come from a language model
const ProviderLocal = "local"

const chatSystemPrompt = `You are a friendly beauty advisor for a product discovery app.
Give concise, practical advice about skincare, makeup, haircare, tanning, lashes and fragrance.
Mention specific product types and ingredients when useful. Keep answers under 200 words.
Do not give medical diagnoses; suggest a dermatologist for persistent skin conditions.`

// ChatServiceConfig holds configuration for the chat service
type ChatServiceConfig struct {
	CompletionTimeout time.Duration
	MaxProducts       int
}

// ChatService answers beauty questions through an ordered chain of language models
// and attaches matching products from the local catalog
type ChatService struct {
	completers []domain.Completer
	catalog    domain.ProductCatalog
	matcher    *MatchingService
	logger     *zap.Logger

	timeout     time.Duration
	maxProducts int
}

// NewChatService creates a chat service. completers are tried in order.
func NewChatService(
	completers []domain.Completer,
	catalog domain.ProductCatalog,
	matcher *MatchingService,
	config ChatServiceConfig,
	logger *zap.Logger,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := config.CompletionTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxProducts := config.MaxProducts
	if maxProducts <= 0 {
		maxProducts = 5
	}
	return &ChatService{
		completers:  completers,
		catalog:     catalog,
		matcher:     matcher,
		logger:      logger,
		timeout:     timeout,
		maxProducts: maxProducts,
	}
}

// Chat answers a message. Missing or failing models degrade to a canned reply;
// only a blank message or an expired request is an error.
func (s *ChatService) Chat(ctx context.Context, request domain.ChatRequest) (*domain.ChatResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidRequest)
	}

	prompt := buildChatPrompt(strings.TrimSpace(request.Context), message)

	reply, provider, err := firstCompletion(ctx, s.completers, s.timeout, chatSystemPrompt, prompt, s.logger)
	if err != nil {
		if errors.Is(err, domain.ErrRequestTimeout) {
			return nil, err
		}
		s.logger.Info("no language model answered, using local reply", zap.Error(err))
		reply = fallbackReply(message)
		provider = ProviderLocal
	}

	products, err := s.matcher.Recommend(ctx, message+" "+request.Context, s.catalog.Products(), s.maxProducts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRequestTimeout, ctx.Err())
		}
		s.logger.Warn("product matching failed", zap.Error(err))
		products = []domain.Product{}
	}

	return &domain.ChatResponse{
		Response: strings.TrimSpace(reply),
		Provider: provider,
		Products: products,
	}, nil
}

func buildChatPrompt(history, message string) string {
	var b strings.Builder
	if history != "" {
		b.WriteString("Conversation context:\n")
		b.WriteString(history)
		b.WriteString("\n\n")
	}
	b.WriteString("User question:\n")
	b.WriteString(message)
	return b.String()
}

// fallbackReply picks a canned answer by topic when no model is reachable
func fallbackReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "tanning", "tanner", "self tan", "self-tan", "bronz"):
		return "For a natural-looking tan, exfoliate the day before, moisturize dry areas like elbows and knees, and apply self-tanner with a mitt in circular motions. Gradual tanning lotions are the most forgiving option if you are new to self-tanning."
	case containsAny(lower, "lash", "mascara"):
		return "For fuller lashes, curl them before mascara and wiggle the wand from root to tip. Wispy false lashes give a soft everyday look, while full-volume sets suit evenings. Always remove lash products before bed."
	case strings.Contains(lower, "lip"):
		return "Prep lips with a gentle scrub and balm, line them to prevent feathering, then apply your lipstick or gloss. Matte liquid formulas last longest; glosses and balms add comfort and shine."
	case strings.Contains(lower, "eye") && containsAny(lower, "dark", "puff", "circle"):
		return "For dark circles and puffiness, look for eye creams with caffeine, niacinamide or peptides, apply with your ring finger, and keep the product in the fridge for an extra de-puffing effect."
	case containsAny(lower, "acne", "oily", "breakout"):
		return "For oily or acne-prone skin, use a gentle cleanser twice a day, a lightweight non-comedogenic moisturizer, and an active such as niacinamide or salicylic acid. Introduce one new active at a time."
	case containsAny(lower, "dry", "hydrat", "dehydrat"):
		return "For dry skin, layer a hydrating serum with hyaluronic acid under a richer moisturizer, avoid hot water when cleansing, and use an overnight mask a few times a week."
	case strings.Contains(lower, "hair"):
		return "For healthy hair, use a sulfate-free shampoo, condition every wash, and add a weekly bond-repair or deep conditioning mask. A few drops of hair oil on the ends tames frizz."
	default:
		return "A simple routine goes a long way: cleanse, treat, moisturize, and wear sunscreen every morning. Tell me your skin type or the product you are looking for and I can suggest options from our catalog."
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
