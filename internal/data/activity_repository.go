package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ActivityRepository handles the append-only audit trail.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends an audit record. Entries are never updated or deleted.
func (r *ActivityRepository) Create(ctx context.Context, entry *ActivityLog) error {
	entry.CreatedAt = time.Now().UTC()
	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO activity_logs (user_id, action, entity_type, entity_id, details, created_at)
		 VALUES (:user_id, :action, :entity_type, :entity_id, :details, :created_at)`, entry)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]*ActivityLog, error) {
	var entries []*ActivityLog
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, user_id, action, entity_type, entity_id, details, created_at
		 FROM activity_logs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent activities: %w", err)
	}
	return entries, nil
}
