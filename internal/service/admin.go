package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgcrypto "github.com/and161185/proglo/internal/crypto"
	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/model"
	"github.com/and161185/proglo/internal/repository"
	"go.uber.org/zap"
)

// AdminService manages accounts. Every operation requires an admin session.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, name, email, password string, role model.Role) (model.User, error)
	UpdateUser(ctx context.Context, id string, patch model.UserPatch) (model.User, error)
	// DeleteUser removes an account; reports false if it was already gone.
	DeleteUser(ctx context.Context, id string) (bool, error)
}

type AdminServiceImpl struct {
	auth  Authenticator
	users repository.UserRepository
	log   *zap.Logger
}

var _ AdminService = (*AdminServiceImpl)(nil)

// NewAdminService constructs AdminService.
func NewAdminService(auth Authenticator, users repository.UserRepository, log *zap.Logger) *AdminServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminServiceImpl{auth: auth, users: users, log: log}
}

func (s *AdminServiceImpl) requireAdmin(ctx context.Context) (model.User, error) {
	u, err := requireUser(ctx, s.auth)
	if err != nil {
		return model.User{}, err
	}
	if !u.IsAdmin() {
		return model.User{}, errs.ErrForbidden
	}
	return u, nil
}

func (s *AdminServiceImpl) ListUsers(ctx context.Context) ([]model.User, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out, nil
}

// CreateUser adds an account without touching the current session.
func (s *AdminServiceImpl) CreateUser(ctx context.Context, name, email, password string, role model.Role) (model.User, error) {
	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return model.User{}, err
	}
	email = model.NormalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return model.User{}, err
	}
	if role == "" {
		role = model.RoleUser
	}

	hash, salt, err := pkgcrypto.NewPasswordHash(password)
	if err != nil {
		return model.User{}, err
	}
	u, err := s.users.Add(ctx, model.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		Role:         role,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return model.User{}, err
	}
	s.log.Info("user created by admin", zap.String("user_id", u.ID), zap.String("admin_id", admin.ID))
	return u.Public(), nil
}

func (s *AdminServiceImpl) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (model.User, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return model.User{}, err
	}
	u, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return model.User{}, err
	}
	return u.Public(), nil
}

func (s *AdminServiceImpl) DeleteUser(ctx context.Context, id string) (bool, error) {
	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return false, err
	}
	if id == admin.ID {
		return false, fmt.Errorf("%w: cannot delete the signed-in account", errs.ErrValidation)
	}
	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		s.log.Info("user deleted by admin", zap.String("user_id", id), zap.String("admin_id", admin.ID))
	}
	return removed, nil
}
