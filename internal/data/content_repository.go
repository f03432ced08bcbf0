package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const contentColumns = `id, page_id, language, title, description, body, metadata,
	meta_title, meta_description, canonical_url, og_image, published, created_at, updated_at`

// ContentRepository is a concrete implementation of the content store using sqlx.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// GetByPage retrieves the brand-agnostic content row for a page/language pair.
// When several rows exist the oldest wins, matching the resolution fallback.
func (r *ContentRepository) GetByPage(ctx context.Context, pageID, language string) (*Content, error) {
	var content Content
	query := `SELECT ` + contentColumns + ` FROM contents
		WHERE page_id = ? AND language = ? ORDER BY id LIMIT 1`
	if err := r.db.GetContext(ctx, &content, query, pageID, language); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("content %q (%s): %w", pageID, language, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get content by page: %w", err)
	}
	return &content, nil
}

// GetByPageAndSite retrieves the content row for a page/language pair that is
// linked to the given brand through the content_sites table.
func (r *ContentRepository) GetByPageAndSite(ctx context.Context, pageID, language, siteCode string) (*Content, error) {
	var content Content
	query := `SELECT c.id, c.page_id, c.language, c.title, c.description, c.body, c.metadata,
			c.meta_title, c.meta_description, c.canonical_url, c.og_image, c.published,
			c.created_at, c.updated_at
		FROM contents c
		JOIN content_sites cs ON cs.entity_id = c.id AND cs.entity_type = ?
		WHERE c.page_id = ? AND c.language = ? AND cs.site_code = ?
		ORDER BY c.id LIMIT 1`
	if err := r.db.GetContext(ctx, &content, query, EntityContent, pageID, language, siteCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("content %q (%s) for site %q: %w", pageID, language, siteCode, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get content by page and site: %w", err)
	}
	return &content, nil
}

// GetByID retrieves a single content row by its ID.
func (r *ContentRepository) GetByID(ctx context.Context, id int64) (*Content, error) {
	var content Content
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = ?`
	if err := r.db.GetContext(ctx, &content, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("content %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get content by id: %w", err)
	}
	return &content, nil
}

// Create inserts a new content row and returns its ID. When siteCode is
// non-empty the insert and the brand link are written in one transaction, so
// a crash can never leave the pair half-applied.
func (r *ContentRepository) Create(ctx context.Context, content *Content, siteCode string) (int64, error) {
	now := time.Now().UTC()
	content.CreatedAt = now
	content.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, `INSERT INTO contents
		(page_id, language, title, description, body, metadata, meta_title,
		 meta_description, canonical_url, og_image, published, created_at, updated_at)
		VALUES (:page_id, :language, :title, :description, :body, :metadata, :meta_title,
		 :meta_description, :canonical_url, :og_image, :published, :created_at, :updated_at)`, content)
	if err != nil {
		return 0, fmt.Errorf("failed to insert content: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted content id: %w", err)
	}

	if siteCode != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO content_sites (entity_id, entity_type, site_code) VALUES (?, ?, ?)`,
			id, EntityContent, siteCode)
		if err != nil {
			return 0, fmt.Errorf("failed to link content to site: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit content insert: %w", err)
	}
	content.ID = id
	return id, nil
}

// Update persists changes to an existing content row.
func (r *ContentRepository) Update(ctx context.Context, content *Content) error {
	content.UpdatedAt = time.Now().UTC()
	query := `UPDATE contents SET title = :title, description = :description, body = :body,
		metadata = :metadata, meta_title = :meta_title, meta_description = :meta_description,
		canonical_url = :canonical_url, og_image = :og_image, published = :published,
		updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, content)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("content %d: %w", content.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a content row and prunes its site links in one transaction.
func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM contents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("content %d: %w", id, ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM content_sites WHERE entity_id = ? AND entity_type = ?`, id, EntityContent)
	if err != nil {
		return fmt.Errorf("failed to prune content site links: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of content rows for a language, optionally
// restricted to those linked to a brand.
func (r *ContentRepository) Count(ctx context.Context, language, siteCode string) (int, error) {
	var count int
	if siteCode == "" {
		err := r.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM contents WHERE language = ?`, language)
		if err != nil {
			return 0, fmt.Errorf("failed to count contents: %w", err)
		}
		return count, nil
	}
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM contents c
		 JOIN content_sites cs ON cs.entity_id = c.id AND cs.entity_type = ?
		 WHERE c.language = ? AND cs.site_code = ?`, EntityContent, language, siteCode)
	if err != nil {
		return 0, fmt.Errorf("failed to count contents for site: %w", err)
	}
	return count, nil
}
