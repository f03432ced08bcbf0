package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SiteLinkRepository manages the content_sites link table shared by content,
// jobs, news and landing pages.
type SiteLinkRepository struct {
	db *sqlx.DB
}

// NewSiteLinkRepository creates a new SiteLinkRepository.
func NewSiteLinkRepository(db *sqlx.DB) *SiteLinkRepository {
	return &SiteLinkRepository{db: db}
}

// Create links an entity to a brand. The operation is idempotent: a link that
// already exists is left alone, backed by the composite unique index.
func (r *SiteLinkRepository) Create(ctx context.Context, entityID int64, entityType, siteCode string) error {
	exists, err := r.Exists(ctx, entityID, entityType, siteCode)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO content_sites (entity_id, entity_type, site_code) VALUES (?, ?, ?)`,
		entityID, entityType, siteCode)
	if err != nil {
		return fmt.Errorf("failed to create site link: %w", err)
	}
	return nil
}

// Delete removes a single entity/brand link.
func (r *SiteLinkRepository) Delete(ctx context.Context, entityID int64, entityType, siteCode string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM content_sites WHERE entity_id = ? AND entity_type = ? AND site_code = ?`,
		entityID, entityType, siteCode)
	if err != nil {
		return fmt.Errorf("failed to delete site link: %w", err)
	}
	return nil
}

// Exists reports whether a link row is present.
func (r *SiteLinkRepository) Exists(ctx context.Context, entityID int64, entityType, siteCode string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM content_sites WHERE entity_id = ? AND entity_type = ? AND site_code = ?`,
		entityID, entityType, siteCode)
	if err != nil {
		return false, fmt.Errorf("failed to check site link: %w", err)
	}
	return count > 0, nil
}

// ListForEntity returns all brand links of an entity.
func (r *SiteLinkRepository) ListForEntity(ctx context.Context, entityID int64, entityType string) ([]*SiteLink, error) {
	var links []*SiteLink
	err := r.db.SelectContext(ctx, &links,
		`SELECT id, entity_id, entity_type, site_code FROM content_sites
		 WHERE entity_id = ? AND entity_type = ? ORDER BY id`,
		entityID, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list site links: %w", err)
	}
	return links, nil
}
