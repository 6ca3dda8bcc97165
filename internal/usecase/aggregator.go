package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AggregatorConfig holds configuration for the aggregator
type AggregatorConfig struct {
	// SourceTimeout bounds each adapter independently
	SourceTimeout time.Duration
}

// AggregateResult holds every adapter's batch in configuration order
type AggregateResult struct {
	Batches []domain.SourceBatch
	Reports []domain.SourceReport
}

// Aggregator fans a query out to every enabled source and waits for all of them to settle
type Aggregator struct {
	remote  []domain.ProductSource
	local   domain.ProductSource
	timeout time.Duration
	logger  *zap.Logger
}

// NewAggregator creates an aggregator. remote sources run in the given order and the
// local catalog is always appended last, which makes remote results win deduplication.
func NewAggregator(remote []domain.ProductSource, local domain.ProductSource, config AggregatorConfig, logger *zap.Logger) *Aggregator {
	timeout := config.SourceTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		remote:  remote,
		local:   local,
		timeout: timeout,
		logger:  logger,
	}
}

// Sources returns the names of all configured sources in fan-out order
func (a *Aggregator) Sources() []string {
	names := make([]string, 0, len(a.remote)+1)
	for _, s := range a.remote {
		names = append(names, s.Name())
	}
	if a.local != nil {
		names = append(names, a.local.Name())
	}
	return names
}

// Aggregate runs the enabled sources concurrently. Individual failures become empty
// batches; only expiry of ctx itself is reported as an error.
func (a *Aggregator) Aggregate(ctx context.Context, q domain.SourceQuery, skipRemote bool) (*AggregateResult, error) {
	var sources []domain.ProductSource
	if !skipRemote {
		sources = append(sources, a.remote...)
	}
	if a.local != nil {
		sources = append(sources, a.local)
	}

	batches := make([]domain.SourceBatch, len(sources))
	reports := make([]domain.SourceReport, len(sources))

	// goroutines always return nil so one failure never cancels the others
	var eg errgroup.Group
	for i, src := range sources {
		eg.Go(func() error {
			items, report := a.fetchOne(ctx, src, q)
			batches[i] = domain.SourceBatch{Source: src.Name(), Items: items}
			reports[i] = report
			return nil
		})
	}
	_ = eg.Wait()

	for _, r := range reports {
		fields := []zap.Field{
			zap.String("source", r.Name),
			zap.Int("count", r.Count),
			zap.Bool("ok", r.OK),
			zap.Int64("duration_ms", r.DurationMS),
		}
		if r.Error != "" {
			fields = append(fields, zap.String("error", r.Error))
		}
		a.logger.Info("source settled", fields...)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRequestTimeout, err)
	}

	return &AggregateResult{Batches: batches, Reports: reports}, nil
}

// fetchOne is the per-adapter error boundary
func (a *Aggregator) fetchOne(ctx context.Context, src domain.ProductSource, q domain.SourceQuery) (items []domain.RawProduct, report domain.SourceReport) {
	start := time.Now()
	report.Name = src.Name()

	defer func() {
		report.DurationMS = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			a.logger.Error("source panicked", zap.String("source", report.Name), zap.Any("panic", r))
			items = nil
			report.OK = false
			report.Count = 0
			report.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	got, err := src.Fetch(fetchCtx, q)
	if err != nil {
		a.logger.Warn("source failed", zap.String("source", report.Name), zap.Error(err))
		report.Error = err.Error()
		return nil, report
	}

	report.OK = true
	report.Count = len(got)
	return got, report
}
