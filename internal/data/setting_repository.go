package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SettingRepository handles key+language scoped string settings.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new SettingRepository.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting by key and language.
func (r *SettingRepository) Get(ctx context.Context, key, language string) (*Setting, error) {
	var setting Setting
	err := r.db.GetContext(ctx, &setting,
		`SELECT id, setting_key, language, value, updated_at FROM settings
		 WHERE setting_key = ? AND language = ?`, key, language)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("setting %q (%s): %w", key, language, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &setting, nil
}

// List returns all settings, optionally restricted to one language.
func (r *SettingRepository) List(ctx context.Context, language string) ([]*Setting, error) {
	var settings []*Setting
	var err error
	if language == "" {
		err = r.db.SelectContext(ctx, &settings,
			`SELECT id, setting_key, language, value, updated_at FROM settings
			 ORDER BY setting_key, language`)
	} else {
		err = r.db.SelectContext(ctx, &settings,
			`SELECT id, setting_key, language, value, updated_at FROM settings
			 WHERE language = ? ORDER BY setting_key`, language)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// Upsert stores a value by key and language, updating in place when the pair
// already exists.
func (r *SettingRepository) Upsert(ctx context.Context, key, language, value string) (*Setting, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE settings SET value = ?, updated_at = ? WHERE setting_key = ? AND language = ?`,
		value, now, key, language)
	if err != nil {
		return nil, fmt.Errorf("failed to update setting: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO settings (setting_key, language, value, updated_at) VALUES (?, ?, ?, ?)`,
			key, language, value, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert setting: %w", err)
		}
	}
	return r.Get(ctx, key, language)
}
