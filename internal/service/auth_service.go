package service

import (
	"context"
	"errors"
	"go-sites-app/internal/data"
	"go-sites-app/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login attempt fails. The message
// is deliberately the same for unknown users and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserRepository defines the storage interface for admin accounts.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*data.User, error)
	Create(ctx context.Context, user *data.User) (int64, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
}

// AuthService verifies credentials and ensures the bootstrap admin account.
type AuthService struct {
	repo UserRepository
	log  logger.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo UserRepository, log logger.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

// Authenticate checks a username/password pair against the stored bcrypt
// hash and returns the matching user.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*data.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if data.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *AuthService) CreateUser(ctx context.Context, username, password string, isAdmin bool) (*data.User, error) {
	if username == "" || password == "" {
		return nil, ValidationError("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &data.User{Username: username, PasswordHash: string(hash), IsAdmin: isAdmin}
	if _, err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureBootstrapAdmin makes sure the environment-supplied admin account
// exists and carries the admin flag. Missing credentials are logged and
// skipped; the process still starts.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.log.Warn("Admin bootstrap credentials not configured; skipping admin bootstrap")
		return nil
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if !data.IsNotFound(err) {
			return err
		}
		if _, err := s.CreateUser(ctx, username, password, true); err != nil {
			return err
		}
		s.log.Info("Bootstrap admin account created")
		return nil
	}

	if !user.IsAdmin {
		if err := s.repo.SetAdmin(ctx, user.ID, true); err != nil {
			return err
		}
		s.log.Info("Existing bootstrap user promoted to admin")
	}
	return nil
}
