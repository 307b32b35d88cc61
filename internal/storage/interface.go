package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no document is stored under a key
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnavailable wraps every failure of the underlying backend
	ErrUnavailable = errors.New("storage: unavailable")
)

// Provider is a durable mapping from namespaced string keys to JSON
// documents. Documents are always read and replaced whole.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context) ([]string, error)

	// Utils
	GetConfigPath() string
}
