// Package service contains application services for authentication, tracking and administration.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgcrypto "github.com/and161185/proglo/internal/crypto"
	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/limiter"
	"github.com/and161185/proglo/internal/model"
	"github.com/and161185/proglo/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

// Authenticator resolves the user of the current session.
type Authenticator interface {
	// CurrentUser returns the logged-in user; ok is false when logged out.
	CurrentUser(ctx context.Context) (u model.User, ok bool, err error)
}

// AuthService defines session lifecycle and profile operations.
type AuthService interface {
	Authenticator
	// Login verifies credentials and stores the session pointer.
	Login(ctx context.Context, email, password string) (model.User, error)
	// Register creates an account and logs it in.
	Register(ctx context.Context, name, email, password string, role model.Role) (model.User, error)
	// Logout clears the session pointer; idempotent.
	Logout(ctx context.Context) error
	// UpdateProfile merges profile fields into the current user.
	UpdateProfile(ctx context.Context, patch model.UserPatch) (model.User, error)
	// ChangePassword replaces the current user's password after verifying the old one.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
	log       *zap.Logger
}

var _ AuthService = (*AuthServiceImpl)(nil)

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter, log *zap.Logger) *AuthServiceImpl {
	if lim == nil {
		lim = limiter.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthServiceImpl{users: users, sessions: sessions, signKey: signKey, accessTTL: accessTTL, lim: lim, log: log}
}

func validateCredentials(email, password string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: malformed email", errs.ErrValidation)
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", errs.ErrValidation, MinPasswordLen)
	}
	return nil
}

// Register creates a new user with a fresh salt and logs it in.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string, role model.Role) (model.User, error) {
	email = model.NormalizeEmail(email)
	if strings.TrimSpace(name) == "" {
		return model.User{}, fmt.Errorf("%w: empty name", errs.ErrValidation)
	}
	if err := validateCredentials(email, password); err != nil {
		return model.User{}, err
	}
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return model.User{}, fmt.Errorf("%w: unknown role %q", errs.ErrValidation, role)
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
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))

	if err := s.startSession(ctx, u); err != nil {
		return model.User{}, err
	}
	return u.Public(), nil
}

// Login authenticates with rate limiting by email.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (model.User, error) {
	email = model.NormalizeEmail(email)

	allowed, retry, err := s.lim.Allow(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	if !allowed {
		return model.User{}, fmt.Errorf("%w: retry in %s", errs.ErrRateLimited, retry.Round(time.Second))
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return model.User{}, err
	}
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.PasswordSalt, u.PasswordHash) {
		// unknown email and wrong password look the same
		return model.User{}, s.passwordFailure(ctx, email)
	}

	s.passwordSuccess(ctx, email)
	if err := s.startSession(ctx, u); err != nil {
		return model.User{}, err
	}
	return u.Public(), nil
}

// Logout clears the session pointer.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("logged out")
	return nil
}

// CurrentUser restores the user from the session pointer. A pointer whose token
// does not verify, or whose user no longer exists, is cleared.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context) (model.User, bool, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil || sess == nil {
		return model.User{}, false, err
	}

	if err := s.verifyToken(sess.AccessToken, sess.User.ID); err != nil {
		s.log.Warn("discarding session", zap.String("user_id", sess.User.ID), zap.Error(err))
		return model.User{}, false, s.sessions.Clear(ctx)
	}

	u, err := s.users.Get(ctx, sess.User.ID)
	if errors.Is(err, errs.ErrNotFound) {
		s.log.Warn("discarding session of removed user", zap.String("user_id", sess.User.ID))
		return model.User{}, false, s.sessions.Clear(ctx)
	}
	if err != nil {
		return model.User{}, false, err
	}
	return u.Public(), true, nil
}

// UpdateProfile merges patch into the current user. The role cannot be changed here.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, patch model.UserPatch) (model.User, error) {
	cur, err := requireUser(ctx, s)
	if err != nil {
		return model.User{}, err
	}
	patch.Role = nil

	u, err := s.users.Update(ctx, cur.ID, patch)
	if err != nil {
		return model.User{}, err
	}
	if err := s.refreshSession(ctx, u); err != nil {
		return model.User{}, err
	}
	return u.Public(), nil
}

// ChangePassword verifies oldPassword and stores a hash of newPassword with a new salt.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	cur, err := requireUser(ctx, s)
	if err != nil {
		return err
	}
	u, err := s.users.Get(ctx, cur.ID)
	if err != nil {
		return err
	}
	if err := s.checkPassword(ctx, u, oldPassword); err != nil {
		return err
	}
	if len(newPassword) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", errs.ErrValidation, MinPasswordLen)
	}

	hash, salt, err := pkgcrypto.NewPasswordHash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.SetPassword(ctx, u.ID, hash, salt); err != nil {
		return err
	}
	s.log.Info("password changed", zap.String("user_id", u.ID))
	return nil
}

// checkPassword verifies password for u under the same failure limiter as Login.
func (s *AuthServiceImpl) checkPassword(ctx context.Context, u model.User, password string) error {
	allowed, retry, err := s.lim.Allow(ctx, u.Email)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: retry in %s", errs.ErrRateLimited, retry.Round(time.Second))
	}
	if !pkgcrypto.VerifyPassword([]byte(password), u.PasswordSalt, u.PasswordHash) {
		return s.passwordFailure(ctx, u.Email)
	}
	s.passwordSuccess(ctx, u.Email)
	return nil
}

func (s *AuthServiceImpl) passwordFailure(ctx context.Context, email string) error {
	blocked, retry, err := s.lim.Failure(ctx, email)
	if err != nil {
		s.log.Warn("record login failure", zap.Error(err))
	}
	if blocked {
		return fmt.Errorf("%w: retry in %s", errs.ErrRateLimited, retry.Round(time.Second))
	}
	return errs.ErrUnauthorized
}

func (s *AuthServiceImpl) passwordSuccess(ctx context.Context, email string) {
	if err := s.lim.Success(ctx, email); err != nil {
		s.log.Warn("reset login limiter", zap.Error(err))
	}
}

func (s *AuthServiceImpl) startSession(ctx context.Context, u model.User) error {
	access, exp, err := s.issueAccessToken(u.ID)
	if err != nil {
		return err
	}
	if err := s.sessions.Save(ctx, model.Session{User: u.Public(), AccessToken: access, ExpiresAt: exp}); err != nil {
		return err
	}
	s.log.Info("logged in", zap.String("user_id", u.ID))
	return nil
}

// refreshSession rewrites the stored user while keeping the token.
func (s *AuthServiceImpl) refreshSession(ctx context.Context, u model.User) error {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return err
	}
	if sess == nil || sess.User.ID != u.ID {
		return nil
	}
	sess.User = u.Public()
	return s.sessions.Save(ctx, *sess)
}

// issueAccessToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueAccessToken(userID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

func (s *AuthServiceImpl) verifyToken(token, userID string) error {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.signKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return err
	}
	if claims.Subject != userID {
		return errors.New("token subject mismatch")
	}
	return nil
}

func requireUser(ctx context.Context, a Authenticator) (model.User, error) {
	u, ok, err := a.CurrentUser(ctx)
	if err != nil {
		return model.User{}, err
	}
	if !ok {
		return model.User{}, errs.ErrNotAuthenticated
	}
	return u, nil
}
