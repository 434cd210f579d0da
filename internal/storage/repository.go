package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Store is a string key-value store. PutMany writes all entries or none.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	PutMany(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
