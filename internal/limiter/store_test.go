package limiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/and161185/proglo/internal/kv"
	"github.com/and161185/proglo/internal/kv/memstore"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(t *testing.T) (*Store, *clock, kv.Store) {
	t.Helper()
	mem := memstore.New()
	l := NewStore(mem, nil, 15*time.Minute, 3, 10*time.Minute)
	c := &clock{t: time.Date(2025, 4, 11, 12, 0, 0, 0, time.UTC)}
	l.now = c.now
	return l, c, mem
}

func TestAllow_UnknownEmail_Allows(t *testing.T) {
	l, _, _ := newTestStore(t)

	ok, dur, err := l.Allow(context.Background(), "a@x.io")
	if err != nil || !ok || dur != 0 {
		t.Fatalf("Allow = %v, %v, %v; want true, 0, nil", ok, dur, err)
	}
}

func TestFailure_BlocksAfterMaxFails(t *testing.T) {
	l, c, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		blocked, _, err := l.Failure(ctx, "a@x.io")
		if err != nil || blocked {
			t.Fatalf("failure %d: blocked=%v err=%v", i, blocked, err)
		}
	}
	blocked, dur, err := l.Failure(ctx, "a@x.io")
	if err != nil || !blocked || dur != 10*time.Minute {
		t.Fatalf("third failure = %v, %v, %v; want block for 10m", blocked, dur, err)
	}

	c.t = c.t.Add(4 * time.Minute)
	ok, retry, err := l.Allow(ctx, "a@x.io")
	if err != nil || ok || retry != 6*time.Minute {
		t.Fatalf("Allow during block = %v, %v, %v", ok, retry, err)
	}
	if ok, _, _ := l.Allow(ctx, "b@x.io"); !ok {
		t.Fatalf("block must be per email")
	}

	c.t = c.t.Add(7 * time.Minute)
	if ok, _, _ := l.Allow(ctx, "a@x.io"); !ok {
		t.Fatalf("block should expire")
	}
}

func TestFailure_WindowResetsCount(t *testing.T) {
	l, c, _ := newTestStore(t)
	ctx := context.Background()

	l.Failure(ctx, "a@x.io")
	l.Failure(ctx, "a@x.io")
	c.t = c.t.Add(20 * time.Minute)

	blocked, _, err := l.Failure(ctx, "a@x.io")
	if err != nil || blocked {
		t.Fatalf("stale failures must not count: blocked=%v err=%v", blocked, err)
	}
}

func TestSuccess_ResetsCounters(t *testing.T) {
	l, _, _ := newTestStore(t)
	ctx := context.Background()

	l.Failure(ctx, "a@x.io")
	l.Failure(ctx, "a@x.io")
	if err := l.Success(ctx, "a@x.io"); err != nil {
		t.Fatalf("Success: %v", err)
	}
	if blocked, _, _ := l.Failure(ctx, "a@x.io"); blocked {
		t.Fatalf("counter should restart after success")
	}
}

func TestState_SurvivesNewInstance(t *testing.T) {
	l, c, mem := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		l.Failure(ctx, "a@x.io")
	}

	l2 := NewStore(mem, nil, 15*time.Minute, 3, 10*time.Minute)
	l2.now = c.now
	if ok, _, _ := l2.Allow(ctx, "a@x.io"); ok {
		t.Fatalf("block must persist in the store")
	}
}

type brokenStore struct{}

var errIO = errors.New("io")

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errIO }
func (brokenStore) Set(context.Context, string, []byte) error   { return errIO }
func (brokenStore) Remove(context.Context, string) error        { return errIO }

func TestAllow_StoreErrorPropagates(t *testing.T) {
	l := NewStore(brokenStore{}, nil, time.Minute, 1, time.Minute)
	if _, _, err := l.Allow(context.Background(), "a@x.io"); !errors.Is(err, errIO) {
		t.Fatalf("err=%v, want errIO", err)
	}
}

func TestNop_NeverBlocks(t *testing.T) {
	var l Limiter = Nop{}
	for i := 0; i < 10; i++ {
		if blocked, _, _ := l.Failure(context.Background(), "x"); blocked {
			t.Fatalf("Nop blocked")
		}
	}
}
