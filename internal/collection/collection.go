// Package collection stores typed JSON arrays under fixed keys of a key-value store.
package collection

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/kv"
	"go.uber.org/zap"
)

// Collection is a JSON-encoded []T kept under a single storage key.
//
// Reads never fail on bad data: a missing key and an undecodable value both read
// as an empty collection. The next Set overwrites whatever was stored.
type Collection[T any] struct {
	store kv.Store
	key   string
	log   *zap.Logger
}

// New binds a collection to key in store.
func New[T any](store kv.Store, key string, log *zap.Logger) *Collection[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collection[T]{store: store, key: key, log: log}
}

// Key returns the storage key.
func (c *Collection[T]) Key() string { return c.key }

// Get loads the whole collection.
func (c *Collection[T]) Get(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return []T{}, nil
	case errors.Is(err, errs.ErrCorrupt):
		c.log.Warn("discarding unreadable collection", zap.String("key", c.key), zap.Error(err))
		return []T{}, nil
	case err != nil:
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn("discarding undecodable collection", zap.String("key", c.key), zap.Error(err))
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Set serializes items and overwrites the stored collection.
func (c *Collection[T]) Set(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.key, raw)
}
