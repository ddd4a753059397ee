// Package repository defines storage interfaces implemented by concrete backends.
//
// Callers depend only on these contracts, so the local key-value backend can be
// replaced by a remote one without touching services or the CLI.
package repository

import (
	"context"

	"github.com/and161185/proglo/internal/model"
)

// OwnedRepository provides access to records that belong to a single user.
type OwnedRepository[T any, P any] interface {
	// List returns all records owned by ownerID in insertion order.
	List(ctx context.Context, ownerID string) ([]T, error)
	// Get loads a record by ID; errs.ErrNotFound if absent.
	Get(ctx context.Context, id string) (T, error)
	// Add assigns a fresh ID, stores the record and returns it.
	Add(ctx context.Context, rec T) (T, error)
	// Update merges patch into the record with the given ID; errs.ErrNotFound if absent.
	Update(ctx context.Context, id string, patch P) (T, error)
}

type (
	ActivityRepository  = OwnedRepository[model.Activity, model.ActivityPatch]
	BMIRepository       = OwnedRepository[model.BMIRecord, model.BMIPatch]
	NutritionRepository = OwnedRepository[model.NutritionEntry, model.NutritionPatch]
	SleepRepository     = OwnedRepository[model.SleepRecord, model.SleepPatch]
	HydrationRepository = OwnedRepository[model.HydrationRecord, model.HydrationPatch]
)

// GoalRepository additionally allows users to delete their goals.
type GoalRepository interface {
	OwnedRepository[model.Goal, model.GoalPatch]
	// Delete removes a goal; reports false if it did not exist.
	Delete(ctx context.Context, id string) (bool, error)
}

// UserRepository provides CRUD access for accounts.
type UserRepository interface {
	// List returns all users.
	List(ctx context.Context) ([]model.User, error)
	// Get loads a user by ID.
	Get(ctx context.Context, id string) (model.User, error)
	// FindByEmail loads a user by email, case-insensitively.
	FindByEmail(ctx context.Context, email string) (model.User, error)
	// Add inserts a new user; errs.ErrAlreadyExists if the email is taken.
	Add(ctx context.Context, u model.User) (model.User, error)
	// Update merges patch into the user; email changes are re-checked for uniqueness.
	Update(ctx context.Context, id string, patch model.UserPatch) (model.User, error)
	// SetPassword replaces the stored password hash and salt.
	SetPassword(ctx context.Context, id string, hash, salt []byte) error
	// Delete removes a user; reports false if it did not exist.
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionRepository persists the pointer to the currently authenticated user.
type SessionRepository interface {
	// Load returns the stored session or nil when none (or unreadable).
	Load(ctx context.Context) (*model.Session, error)
	// Save overwrites the stored session.
	Save(ctx context.Context, s model.Session) error
	// Clear removes the stored session; idempotent.
	Clear(ctx context.Context) error
}
