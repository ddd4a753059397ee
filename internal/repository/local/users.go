package local

import (
	"context"

	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/kv"
	"github.com/and161185/proglo/internal/model"
	"github.com/and161185/proglo/internal/repository"
	"go.uber.org/zap"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo stores accounts under kv.KeyUsers. Emails are unique and compared case-insensitively.
type UserRepo struct {
	o *owned[model.User, model.UserPatch, *model.User]
}

// NewUserRepo constructs a user repository.
func NewUserRepo(store kv.Store, log *zap.Logger) *UserRepo {
	return &UserRepo{o: newOwned[model.User, model.UserPatch](store, kv.KeyUsers, log,
		func(u *model.User) error {
			u.Email = model.NormalizeEmail(u.Email)
			return u.Validate()
		})}
}

func emailTaken(users []model.User, email, exceptID string) bool {
	for _, u := range users {
		if u.ID != exceptID && model.NormalizeEmail(u.Email) == email {
			return true
		}
	}
	return false
}

// List returns all users.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	r.o.mu.Lock()
	defer r.o.mu.Unlock()
	return r.o.coll.Get(ctx)
}

// Get loads a user by ID.
func (r *UserRepo) Get(ctx context.Context, id string) (model.User, error) {
	return r.o.Get(ctx, id)
}

// FindByEmail loads a user by email, ignoring case and surrounding spaces.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	r.o.mu.Lock()
	defer r.o.mu.Unlock()

	users, err := r.o.coll.Get(ctx)
	if err != nil {
		return model.User{}, err
	}
	email = model.NormalizeEmail(email)
	for _, u := range users {
		if model.NormalizeEmail(u.Email) == email {
			return u, nil
		}
	}
	return model.User{}, errs.ErrNotFound
}

// Add inserts a new user with a fresh ID.
func (r *UserRepo) Add(ctx context.Context, u model.User) (model.User, error) {
	r.o.mu.Lock()
	defer r.o.mu.Unlock()

	id, err := newID()
	if err != nil {
		return model.User{}, err
	}
	u.ID = id
	if err := r.o.prepare(&u); err != nil {
		return model.User{}, err
	}

	users, err := r.o.coll.Get(ctx)
	if err != nil {
		return model.User{}, err
	}
	if emailTaken(users, u.Email, "") {
		return model.User{}, errs.ErrAlreadyExists
	}
	if err := r.o.coll.Set(ctx, append(users, u)); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Update merges patch into the user with the given ID.
func (r *UserRepo) Update(ctx context.Context, id string, patch model.UserPatch) (model.User, error) {
	return r.modify(ctx, id, func(u *model.User) { patch.Apply(u) })
}

// SetPassword replaces the password hash and salt of the user.
func (r *UserRepo) SetPassword(ctx context.Context, id string, hash, salt []byte) error {
	_, err := r.modify(ctx, id, func(u *model.User) {
		u.PasswordHash = hash
		u.PasswordSalt = salt
	})
	return err
}

func (r *UserRepo) modify(ctx context.Context, id string, fn func(*model.User)) (model.User, error) {
	r.o.mu.Lock()
	defer r.o.mu.Unlock()

	users, err := r.o.coll.Get(ctx)
	if err != nil {
		return model.User{}, err
	}
	i := indexOf[model.User, *model.User](users, id)
	if i < 0 {
		return model.User{}, errs.ErrNotFound
	}

	u := users[i]
	fn(&u)
	if err := r.o.prepare(&u); err != nil {
		return model.User{}, err
	}
	if emailTaken(users, u.Email, u.ID) {
		return model.User{}, errs.ErrAlreadyExists
	}
	users[i] = u
	if err := r.o.coll.Set(ctx, users); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Delete removes a user; reports false if it was already gone.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.o.remove(ctx, id)
}
