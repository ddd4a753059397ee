// Package kv defines the durable key-value storage used for all local collections.
package kv

import (
	"context"
	"errors"

	pkgcrypto "github.com/and161185/proglo/internal/crypto"
	"github.com/and161185/proglo/internal/errs"
)

// Storage keys. One key per collection plus bookkeeping values.
const (
	KeyUsers       = "proglo_users"
	KeyCurrentUser = "proglo_current_user"
	KeyActivities  = "proglo_activities"
	KeyBMIRecords  = "proglo_bmi_records"
	KeyNutrition   = "proglo_nutrition"
	KeySleep       = "proglo_sleep"
	KeyHydration   = "proglo_hydration"
	KeyGoals       = "proglo_goals"
	KeyLoginLimits = "proglo_login_limits"
	KeyDeviceKey   = "proglo_device_key"
	KeySealHeader  = "proglo_seal_header"
)

// DataKeys lists every key holding application data, i.e. all keys but KeySealHeader.
var DataKeys = []string{
	KeyUsers, KeyCurrentUser, KeyActivities, KeyBMIRecords, KeyNutrition,
	KeySleep, KeyHydration, KeyGoals, KeyLoginLimits, KeyDeviceKey,
}

// Store is a durable key-value storage. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key or errs.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Secret returns the random value stored under key, creating n fresh bytes on first use.
// An unreadable or mis-sized value is replaced.
func Secret(ctx context.Context, s Store, key string, n int) ([]byte, error) {
	v, err := s.Get(ctx, key)
	if err == nil && len(v) == n {
		return v, nil
	}
	if err != nil && !errors.Is(err, errs.ErrNotFound) && !errors.Is(err, errs.ErrCorrupt) {
		return nil, err
	}
	v, err = pkgcrypto.RandBytes(n)
	if err != nil {
		return nil, err
	}
	if err := s.Set(ctx, key, v); err != nil {
		return nil, err
	}
	return v, nil
}
