package service

import (
	"context"
	"go-sites-app/internal/data"

	"github.com/microcosm-cc/bluemonday"
)

// NewsRepository defines the storage interface for news articles.
type NewsRepository interface {
	List(ctx context.Context, language, siteCode string) ([]*data.NewsItem, error)
	Latest(ctx context.Context, language, siteCode string) ([]*data.NewsItem, error)
	GetByID(ctx context.Context, id int64) (*data.NewsItem, error)
	Create(ctx context.Context, item *data.NewsItem) (int64, error)
	Update(ctx context.Context, item *data.NewsItem) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, language, siteCode string) (int, error)
}

// NewsService provides business logic for news articles. The brand filter is
// strict, same as for jobs.
type NewsService struct {
	repo      NewsRepository
	links     SiteLinkRepository
	activity  Recorder
	sanitizer *bluemonday.Policy
}

// NewNewsService creates a new NewsService.
func NewNewsService(repo NewsRepository, links SiteLinkRepository, activity Recorder) *NewsService {
	return &NewsService{
		repo:      repo,
		links:     links,
		activity:  activity,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// ListNews returns articles for a language, newest first by publish date.
func (s *NewsService) ListNews(ctx context.Context, language, siteCode string) ([]*data.NewsItem, error) {
	return s.repo.List(ctx, language, siteCode)
}

// LatestNews returns at most 3 most recent articles.
func (s *NewsService) LatestNews(ctx context.Context, language, siteCode string) ([]*data.NewsItem, error) {
	return s.repo.Latest(ctx, language, siteCode)
}

// GetNewsItem retrieves a single article.
func (s *NewsService) GetNewsItem(ctx context.Context, id int64) (*data.NewsItem, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateNewsItem inserts an article. A site-code hint on the article also
// creates the brand link so the article shows up in that brand's listing,
// same as for job postings.
func (s *NewsService) CreateNewsItem(ctx context.Context, item *data.NewsItem, userID int64) (*data.NewsItem, error) {
	if item.Title == "" {
		return nil, ValidationError("news title is required")
	}
	if item.Language == "" {
		return nil, ValidationError("news language is required")
	}
	item.Body = s.sanitizer.Sanitize(item.Body)
	if _, err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	if item.SiteCode != nil && data.IsValidSiteCode(*item.SiteCode) {
		if err := s.links.Create(ctx, item.ID, data.EntityNews, *item.SiteCode); err != nil {
			return nil, err
		}
	}
	s.activity.Record(ctx, userID, "create", data.EntityNews, item.ID,
		data.JSONMap{"title": item.Title})
	return item, nil
}

// UpdateNewsItem persists changes to an article.
func (s *NewsService) UpdateNewsItem(ctx context.Context, item *data.NewsItem, userID int64) (*data.NewsItem, error) {
	item.Body = s.sanitizer.Sanitize(item.Body)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, userID, "update", data.EntityNews, item.ID,
		data.JSONMap{"title": item.Title})
	return item, nil
}

// DeleteNewsItem hard-deletes an article and prunes its brand links.
func (s *NewsService) DeleteNewsItem(ctx context.Context, id int64, userID int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, userID, "delete", data.EntityNews, id, nil)
	return nil
}

// NewsCount counts articles under the collection filter.
func (s *NewsService) NewsCount(ctx context.Context, language, siteCode string) (int, error) {
	return s.repo.Count(ctx, language, siteCode)
}
