package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Load decodes the JSON value under key into a T. A missing key, a read
// error or malformed JSON all yield def; the latter two are logged.
func Load[T any](ctx context.Context, s Store, key string, def T) T {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "storage read failed", "key", key, "err", err)
		return def
	}
	if !ok || raw == "" {
		return def
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.WarnContext(ctx, "ignoring malformed stored value", "key", key, "err", err)
		return def
	}
	return out
}

// Save encodes v as JSON under key.
func Save[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := Encode(v)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, raw)
}

// Encode is the JSON form Save writes, for building PutMany batches.
func Encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("storage: encode: %w", err)
	}
	return string(b), nil
}
