package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const siteColumns = `id, code, name, domain, primary_color, secondary_color,
	metadata, social, contact_email, contact_phone, address, created_at, updated_at`

// SiteRepository handles database operations for brand configuration rows.
type SiteRepository struct {
	db *sqlx.DB
}

// NewSiteRepository creates a new SiteRepository.
func NewSiteRepository(db *sqlx.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// List returns all brand rows ordered by code.
func (r *SiteRepository) List(ctx context.Context) ([]*Site, error) {
	var sites []*Site
	err := r.db.SelectContext(ctx, &sites,
		`SELECT `+siteColumns+` FROM sites ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	return sites, nil
}

// GetByCode retrieves a single brand row by its code.
func (r *SiteRepository) GetByCode(ctx context.Context, code string) (*Site, error) {
	var site Site
	err := r.db.GetContext(ctx, &site,
		`SELECT `+siteColumns+` FROM sites WHERE code = ?`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("site %q: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get site by code: %w", err)
	}
	return &site, nil
}

// Update persists changes to a brand row, keyed by code.
func (r *SiteRepository) Update(ctx context.Context, site *Site) error {
	site.UpdatedAt = time.Now().UTC()
	query := `UPDATE sites SET name = :name, domain = :domain,
		primary_color = :primary_color, secondary_color = :secondary_color,
		metadata = :metadata, social = :social, contact_email = :contact_email,
		contact_phone = :contact_phone, address = :address, updated_at = :updated_at
		WHERE code = :code`
	result, err := r.db.NamedExecContext(ctx, query, site)
	if err != nil {
		return fmt.Errorf("failed to update site: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("site %q: %w", site.Code, ErrNotFound)
	}
	return nil
}
