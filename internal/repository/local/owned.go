// Package local implements the repositories on top of a key-value store.
//
// Every operation reads and rewrites the whole collection. That is fine for the
// single-user, on-device data sizes this backend targets.
package local

import (
	"context"
	"sync"

	"github.com/and161185/proglo/internal/collection"
	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/kv"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

type record[T any] interface {
	*T
	RecordID() string
	OwnerID() string
	SetRecordID(id string)
}

type patch[T any] interface {
	Apply(rec *T)
}

// owned is the shared list/get/add/update/delete implementation.
type owned[T any, P patch[T], R record[T]] struct {
	mu   sync.Mutex
	coll *collection.Collection[T]
	// prepare validates a record and recomputes derived fields before it is stored.
	prepare func(rec *T) error
}

func newOwned[T any, P patch[T], R record[T]](store kv.Store, key string, log *zap.Logger, prepare func(*T) error) *owned[T, P, R] {
	if prepare == nil {
		prepare = func(*T) error { return nil }
	}
	return &owned[T, P, R]{coll: collection.New[T](store, key, log), prepare: prepare}
}

func newID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func indexOf[T any, R record[T]](items []T, id string) int {
	for i := range items {
		if R(&items[i]).RecordID() == id {
			return i
		}
	}
	return -1
}

// List returns the records owned by ownerID.
func (r *owned[T, P, R]) List(ctx context.Context, ownerID string) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.coll.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for i := range items {
		if R(&items[i]).OwnerID() == ownerID {
			out = append(out, items[i])
		}
	}
	return out, nil
}

// Get loads one record by ID.
func (r *owned[T, P, R]) Get(ctx context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	items, err := r.coll.Get(ctx)
	if err != nil {
		return zero, err
	}
	i := indexOf[T, R](items, id)
	if i < 0 {
		return zero, errs.ErrNotFound
	}
	return items[i], nil
}

// Add assigns a fresh ID and appends rec.
func (r *owned[T, P, R]) Add(ctx context.Context, rec T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	id, err := newID()
	if err != nil {
		return zero, err
	}
	R(&rec).SetRecordID(id)
	if err := r.prepare(&rec); err != nil {
		return zero, err
	}

	items, err := r.coll.Get(ctx)
	if err != nil {
		return zero, err
	}
	if err := r.coll.Set(ctx, append(items, rec)); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update merges p into the record with the given ID. Nothing is written on failure.
func (r *owned[T, P, R]) Update(ctx context.Context, id string, p P) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	items, err := r.coll.Get(ctx)
	if err != nil {
		return zero, err
	}
	i := indexOf[T, R](items, id)
	if i < 0 {
		return zero, errs.ErrNotFound
	}

	rec := items[i]
	p.Apply(&rec)
	if err := r.prepare(&rec); err != nil {
		return zero, err
	}
	items[i] = rec
	if err := r.coll.Set(ctx, items); err != nil {
		return zero, err
	}
	return rec, nil
}

// remove deletes the record with the given ID. Deleting an absent ID is a no-op.
func (r *owned[T, P, R]) remove(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.coll.Get(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf[T, R](items, id)
	if i < 0 {
		return false, nil
	}
	items = append(items[:i], items[i+1:]...)
	if err := r.coll.Set(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}
