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

// firstCompletion walks the completers in order and returns the first non-empty reply.
// Every completer gets the same try-else-skip treatment; failures are logged and skipped.
func firstCompletion(
	ctx context.Context,
	completers []domain.Completer,
	timeout time.Duration,
	system, prompt string,
	logger *zap.Logger,
) (string, string, error) {
	var errs []error
	for _, c := range completers {
		if err := ctx.Err(); err != nil {
			return "", "", fmt.Errorf("%w: %v", domain.ErrRequestTimeout, err)
		}

		reply, err := completeWithTimeout(ctx, c, timeout, system, prompt)
		if err == nil && strings.TrimSpace(reply) == "" {
			err = errors.New("empty reply")
		}
		if err != nil {
			logger.Warn("completer failed, trying next", zap.String("provider", c.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
			continue
		}
		return reply, c.Name(), nil
	}

	if len(errs) == 0 {
		return "", "", domain.ErrNoCompletion
	}
	return "", "", fmt.Errorf("%w: %w", domain.ErrNoCompletion, errors.Join(errs...))
}

func completeWithTimeout(ctx context.Context, c domain.Completer, timeout time.Duration, system, prompt string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.Complete(ctx, system, prompt)
}

// firstProducts walks product sources in order and returns the first non-empty batch
func firstProducts(
	ctx context.Context,
	sources []domain.ProductSource,
	timeout time.Duration,
	q domain.SourceQuery,
	logger *zap.Logger,
) (domain.SourceBatch, error) {
	var errs []error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return domain.SourceBatch{}, fmt.Errorf("%w: %v", domain.ErrRequestTimeout, err)
		}

		fetchCtx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			fetchCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		items, err := src.Fetch(fetchCtx, q)
		cancel()

		if err == nil && len(items) == 0 {
			err = errors.New("no products returned")
		}
		if err != nil {
			logger.Warn("product source failed, trying next", zap.String("source", src.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		return domain.SourceBatch{Source: src.Name(), Items: items}, nil
	}
	return domain.SourceBatch{}, errors.Join(errs...)
}
