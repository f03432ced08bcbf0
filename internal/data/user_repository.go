package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// UserRepository handles database operations for admin accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user,
		`SELECT id, username, password_hash, is_admin, created_at FROM users WHERE username = ?`,
		username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, user *User) (int64, error) {
	user.CreatedAt = time.Now().UTC()
	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO users (username, password_hash, is_admin, created_at)
		 VALUES (:username, :password_hash, :is_admin, :created_at)`, user)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted user id: %w", err)
	}
	user.ID = id
	return id, nil
}

// SetAdmin flips the admin flag on an existing user.
func (r *UserRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_admin = ? WHERE id = ?`, isAdmin, id)
	if err != nil {
		return fmt.Errorf("failed to update admin flag: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}
