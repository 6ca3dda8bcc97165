package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque bytes so memory and redis backends behave alike.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductSource wraps exactly one upstream data source
type ProductSource interface {
	Name() string
	Fetch(ctx context.Context, q SourceQuery) ([]RawProduct, error)
}

// Completer is a language model that turns a prompt into free text
type Completer interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ProductCatalog is the read-only local product list
type ProductCatalog interface {
	Products() []Product
	Len() int
}
