package local

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/kv"
	"github.com/and161185/proglo/internal/model"
	"github.com/and161185/proglo/internal/repository"
	"go.uber.org/zap"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo keeps the session pointer under kv.KeyCurrentUser, apart from the users collection.
type SessionRepo struct {
	store kv.Store
	log   *zap.Logger
}

// NewSessionRepo constructs a session repository.
func NewSessionRepo(store kv.Store, log *zap.Logger) *SessionRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionRepo{store: store, log: log}
}

// Load returns the stored session, or nil if there is none or it cannot be read.
func (r *SessionRepo) Load(ctx context.Context) (*model.Session, error) {
	raw, err := r.store.Get(ctx, kv.KeyCurrentUser)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return nil, nil
	case errors.Is(err, errs.ErrCorrupt):
		r.log.Warn("discarding unreadable session", zap.Error(err))
		return nil, nil
	case err != nil:
		return nil, err
	}

	var s model.Session
	if err := json.Unmarshal(raw, &s); err != nil || s.User.ID == "" {
		r.log.Warn("discarding undecodable session", zap.Error(err))
		return nil, nil
	}
	return &s, nil
}

// Save overwrites the session pointer. Password material is always stripped.
func (r *SessionRepo) Save(ctx context.Context, s model.Session) error {
	s.User = s.User.Public()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, kv.KeyCurrentUser, raw)
}

// Clear removes the session pointer.
func (r *SessionRepo) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, kv.KeyCurrentUser)
}
