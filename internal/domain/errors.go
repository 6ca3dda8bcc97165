package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRequestTimeout is returned when the overall request deadline expires before sources settle
	ErrRequestTimeout = errors.New("request timed out")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrSourceDisabled is returned when an adapter has no credential configured
	ErrSourceDisabled = errors.New("source not configured")

	// ErrUpstreamFailure is returned when a third-party API request fails
	ErrUpstreamFailure = errors.New("upstream API request failed")

	// ErrNoCompletion is returned when no language model in the chain produced a reply
	ErrNoCompletion = errors.New("no completion available")

	// ErrNoJSONArray is returned when a model reply carries no parseable JSON array
	ErrNoJSONArray = errors.New("no JSON array in model reply")
)
