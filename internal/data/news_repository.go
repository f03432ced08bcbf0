package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const newsColumns = `id, title, summary, body, image_url, publish_date, category,
	featured, language, slug, site_code, created_at, updated_at`

// NewsRepository handles database operations for news articles.
type NewsRepository struct {
	db *sqlx.DB
}

// NewNewsRepository creates a new NewsRepository.
func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// List returns all news for a language, newest first by publish date. A
// non-empty siteCode is a strict link-table filter, same as for jobs.
func (r *NewsRepository) List(ctx context.Context, language, siteCode string) ([]*NewsItem, error) {
	var items []*NewsItem
	var err error
	if siteCode == "" {
		err = r.db.SelectContext(ctx, &items,
			`SELECT `+newsColumns+` FROM news WHERE language = ?
			 ORDER BY publish_date DESC, id DESC`, language)
	} else {
		err = r.db.SelectContext(ctx, &items,
			`SELECT n.* FROM news n
			 JOIN content_sites cs ON cs.entity_id = n.id AND cs.entity_type = ?
			 WHERE n.language = ? AND cs.site_code = ?
			 ORDER BY n.publish_date DESC, n.id DESC`,
			EntityNews, language, siteCode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return items, nil
}

// Latest returns the 3 most recent news items under the same filter as List.
func (r *NewsRepository) Latest(ctx context.Context, language, siteCode string) ([]*NewsItem, error) {
	var items []*NewsItem
	var err error
	if siteCode == "" {
		err = r.db.SelectContext(ctx, &items,
			`SELECT `+newsColumns+` FROM news WHERE language = ?
			 ORDER BY publish_date DESC, id DESC LIMIT 3`, language)
	} else {
		err = r.db.SelectContext(ctx, &items,
			`SELECT n.* FROM news n
			 JOIN content_sites cs ON cs.entity_id = n.id AND cs.entity_type = ?
			 WHERE n.language = ? AND cs.site_code = ?
			 ORDER BY n.publish_date DESC, n.id DESC LIMIT 3`,
			EntityNews, language, siteCode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list latest news: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single news item by its ID.
func (r *NewsRepository) GetByID(ctx context.Context, id int64) (*NewsItem, error) {
	var item NewsItem
	query := `SELECT ` + newsColumns + ` FROM news WHERE id = ?`
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("news item %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get news item by id: %w", err)
	}
	return &item, nil
}

// Create inserts a new news item and returns its ID.
func (r *NewsRepository) Create(ctx context.Context, item *NewsItem) (int64, error) {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.PublishDate.IsZero() {
		item.PublishDate = now
	}
	res, err := r.db.NamedExecContext(ctx, `INSERT INTO news
		(title, summary, body, image_url, publish_date, category, featured, language,
		 slug, site_code, created_at, updated_at)
		VALUES (:title, :summary, :body, :image_url, :publish_date, :category, :featured,
		 :language, :slug, :site_code, :created_at, :updated_at)`, item)
	if err != nil {
		return 0, fmt.Errorf("failed to insert news item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted news id: %w", err)
	}
	item.ID = id
	return id, nil
}

// Update persists changes to an existing news item.
func (r *NewsRepository) Update(ctx context.Context, item *NewsItem) error {
	item.UpdatedAt = time.Now().UTC()
	query := `UPDATE news SET title = :title, summary = :summary, body = :body,
		image_url = :image_url, publish_date = :publish_date, category = :category,
		featured = :featured, language = :language, slug = :slug, site_code = :site_code,
		updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to update news item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("news item %d: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a news item and prunes its site links in one transaction.
func (r *NewsRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("news item %d: %w", id, ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM content_sites WHERE entity_id = ? AND entity_type = ?`, id, EntityNews)
	if err != nil {
		return fmt.Errorf("failed to prune news site links: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of news items under the same filter as List.
func (r *NewsRepository) Count(ctx context.Context, language, siteCode string) (int, error) {
	var count int
	var err error
	if siteCode == "" {
		err = r.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM news WHERE language = ?`, language)
	} else {
		err = r.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM news n
			 JOIN content_sites cs ON cs.entity_id = n.id AND cs.entity_type = ?
			 WHERE n.language = ? AND cs.site_code = ?`,
			EntityNews, language, siteCode)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count news: %w", err)
	}
	return count, nil
}
