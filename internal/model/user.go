// Package model defines domain entities used by services and repositories.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/and161185/proglo/internal/errs"
)

// Role is a user's authorization level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// User is an account stored on the device. Password material is never returned to callers.
type User struct {
	ID           string    `json:"id"`    // immutable once assigned
	Email        string    `json:"email"` // unique, normalized
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Avatar       *string   `json:"avatar"`
	Height       *float64  `json:"height,omitempty"` // cm
	Weight       *float64  `json:"weight,omitempty"` // kg
	Gender       *string   `json:"gender,omitempty"`
	Age          *int      `json:"age,omitempty"`
	PasswordHash []byte    `json:"password_hash,omitempty"` // Argon2id(password, PasswordSalt)
	PasswordSalt []byte    `json:"password_salt,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) RecordID() string       { return u.ID }
func (u User) OwnerID() string        { return u.ID }
func (u *User) SetRecordID(id string) { u.ID = id }

// Public returns a copy of u without password material.
func (u User) Public() User {
	u.PasswordHash = nil
	u.PasswordSalt = nil
	return u
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// NormalizeEmail canonicalizes an email for storage and lookup.
// Lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserPatch carries a partial user update; nil fields are left untouched.
type UserPatch struct {
	Name   *string
	Email  *string
	Role   *Role
	Avatar *string
	Height *float64
	Weight *float64
	Gender *string
	Age    *int
}

// Apply merges non-nil fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = NormalizeEmail(*p.Email)
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Avatar != nil {
		u.Avatar = p.Avatar
	}
	if p.Height != nil {
		u.Height = p.Height
	}
	if p.Weight != nil {
		u.Weight = p.Weight
	}
	if p.Gender != nil {
		u.Gender = p.Gender
	}
	if p.Age != nil {
		u.Age = p.Age
	}
}

// Validate checks the user record invariants.
func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: empty name", errs.ErrValidation)
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: malformed email %q", errs.ErrValidation, u.Email)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", errs.ErrValidation, u.Role)
	}
	if h := u.Height; h != nil && (!finite(*h) || *h < MinHeightCm || *h > MaxHeightCm) {
		return fmt.Errorf("%w: height must be within [%g, %g] cm", errs.ErrValidation, MinHeightCm, MaxHeightCm)
	}
	if w := u.Weight; w != nil && (!finite(*w) || *w < MinWeightKg || *w > MaxWeightKg) {
		return fmt.Errorf("%w: weight must be within [%g, %g] kg", errs.ErrValidation, MinWeightKg, MaxWeightKg)
	}
	if u.Age != nil && *u.Age < 0 {
		return fmt.Errorf("%w: negative age", errs.ErrValidation)
	}
	return nil
}

// Session is the persisted pointer to the currently authenticated user.
type Session struct {
	User        User      `json:"user"` // stripped of password material
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
