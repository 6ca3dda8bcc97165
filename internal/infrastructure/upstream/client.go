// Package upstream is the shared HTTP plumbing for third-party product and
// model APIs: retries with backoff, client-side rate limiting, bounded body
// reads and typed status errors.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// MaxBodyBytes bounds how much of a response body is read
	MaxBodyBytes = 4 << 20
	// maxErrorBody bounds how much of a failed response ends up in a StatusError
	maxErrorBody = 512

	userAgent = "BeautyAI/1.0"
)

// Options configures a Client
type Options struct {
	// Component names the upstream in logs, e.g. "rainforest"
	Component string
	Timeout   time.Duration
	RetryMax  int
	// RatePerSecond limits outgoing requests; zero disables the limiter
	RatePerSecond float64
	Burst         int
	Logger        *zap.Logger
}

// Client executes requests against one upstream API
type Client struct {
	http        *retryablehttp.Client
	rateLimiter *rate.Limiter
	component   string
	logger      *zap.Logger
}

// NewClient creates a retrying client. 5xx, 429 and connection errors are
// retried with exponential backoff up to RetryMax times.
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", opts.Component))

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = timeout
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = leveledLogger{logger.Sugar()}
	// hand the last response back instead of a generic "giving up" error
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}

	return &Client{
		http:        rc,
		rateLimiter: limiter,
		component:   opts.Component,
		logger:      logger,
	}
}

// GetJSON issues a GET and decodes a 2xx JSON body into out
func (c *Client) GetJSON(ctx context.Context, operation, url string, header http.Header, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.doJSON(req, operation, header, out)
}

// PostJSON encodes in as the request body, issues a POST and decodes a 2xx JSON body into out
func (c *Client) PostJSON(ctx context.Context, operation, url string, header http.Header, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, operation, header, out)
}

func (c *Client) doJSON(req *retryablehttp.Request, operation string, header http.Header, out any) error {
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.Do(req, operation)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

// Do waits for the rate limiter, executes req and returns the body of a 2xx
// response. Non-2xx responses become *StatusError.
func (c *Client) Do(req *retryablehttp.Request, operation string) ([]byte, error) {
	ctx := req.Context()
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", operation, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := readLimitedBody(resp.Body, MaxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", operation, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		c.logger.Warn("upstream returned an error status",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))
		return nil, &StatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       snippet,
		}
	}

	c.logger.Debug("upstream request completed",
		zap.String("operation", operation),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return body, nil
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, limit)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// leveledLogger routes retryablehttp's logging through zap
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}
