package limiter

import (
	"context"
	"sync"
	"time"

	"github.com/and161185/proglo/internal/collection"
	"github.com/and161185/proglo/internal/kv"
	"go.uber.org/zap"
)

type attempt struct {
	Email        string    `json:"email"`
	FailCount    int       `json:"fail_count"`
	UpdatedAt    time.Time `json:"updated_at"`
	BlockedUntil time.Time `json:"blocked_until"`
}

// Store is a limiter with sliding window and lockout, persisted under kv.KeyLoginLimits
// so that a block survives a restart of the CLI.
type Store struct {
	mu       sync.Mutex
	coll     *collection.Collection[attempt]
	window   time.Duration
	maxFails int
	blockFor time.Duration
	now      func() time.Time
}

var _ Limiter = (*Store)(nil)

// NewStore constructs a key-value backed limiter.
func NewStore(store kv.Store, log *zap.Logger, window time.Duration, maxFails int, blockFor time.Duration) *Store {
	return &Store{
		coll:     collection.New[attempt](store, kv.KeyLoginLimits, log),
		window:   window,
		maxFails: maxFails,
		blockFor: blockFor,
		now:      time.Now,
	}
}

func find(list []attempt, email string) int {
	for i := range list {
		if list[i].Email == email {
			return i
		}
	}
	return -1
}

// Allow reports whether login is currently allowed and a retry-after duration.
func (l *Store) Allow(ctx context.Context, email string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	list, err := l.coll.Get(ctx)
	if err != nil {
		return false, 0, err
	}
	i := find(list, email)
	if i < 0 {
		return true, 0, nil
	}
	now := l.now()
	if until := list[i].BlockedUntil; until.After(now) {
		return false, until.Sub(now), nil
	}
	return true, 0, nil
}

// Success resets counters for email.
func (l *Store) Success(ctx context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	list, err := l.coll.Get(ctx)
	if err != nil {
		return err
	}
	i := find(list, email)
	if i < 0 {
		return nil
	}
	list = append(list[:i], list[i+1:]...)
	return l.coll.Set(ctx, list)
}

// Failure records a failed attempt; may set a block until a future time.
func (l *Store) Failure(ctx context.Context, email string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	list, err := l.coll.Get(ctx)
	if err != nil {
		return false, 0, err
	}
	now := l.now()
	i := find(list, email)
	if i < 0 {
		list = append(list, attempt{Email: email})
		i = len(list) - 1
	}

	a := &list[i]
	if now.Sub(a.UpdatedAt) > l.window {
		a.FailCount = 0
	}
	a.FailCount++
	a.UpdatedAt = now

	blocked := a.FailCount >= l.maxFails
	if blocked {
		a.BlockedUntil = now.Add(l.blockFor)
		a.FailCount = 0
	}
	if err := l.coll.Set(ctx, list); err != nil {
		return false, 0, err
	}
	if blocked {
		return true, l.blockFor, nil
	}
	return false, 0, nil
}
