package service

import (
	"context"
	"fmt"
	"go-sites-app/internal/data"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// FallbackPolicy controls what a brand-filtered lookup does when no
// brand-specific row exists. FallbackGeneric degrades to the brand-agnostic
// row for the page/language pair; FallbackStrict reports not found. Single
// page reads use the generic policy, collection listings the strict one.
type FallbackPolicy string

const (
	FallbackGeneric FallbackPolicy = "generic"
	FallbackStrict  FallbackPolicy = "strict"
)

// ContentRepository defines the storage interface for localized page content.
type ContentRepository interface {
	GetByPage(ctx context.Context, pageID, language string) (*data.Content, error)
	GetByPageAndSite(ctx context.Context, pageID, language, siteCode string) (*data.Content, error)
	GetByID(ctx context.Context, id int64) (*data.Content, error)
	Create(ctx context.Context, content *data.Content, siteCode string) (int64, error)
	Update(ctx context.Context, content *data.Content) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, language, siteCode string) (int, error)
}

// SiteLinkRepository defines the storage interface for entity/brand links.
type SiteLinkRepository interface {
	Create(ctx context.Context, entityID int64, entityType, siteCode string) error
	Delete(ctx context.Context, entityID int64, entityType, siteCode string) error
	Exists(ctx context.Context, entityID int64, entityType, siteCode string) (bool, error)
	ListForEntity(ctx context.Context, entityID int64, entityType string) ([]*data.SiteLink, error)
}

// ContentPatch carries a partial content update; nil fields are left alone.
type ContentPatch struct {
	Title           *string       `json:"title"`
	Description     *string       `json:"description"`
	Body            *string       `json:"body"`
	Metadata        *data.JSONMap `json:"metadata"`
	MetaTitle       *string       `json:"metaTitle"`
	MetaDescription *string       `json:"metaDescription"`
	CanonicalURL    *string       `json:"canonicalUrl"`
	OGImage         *string       `json:"ogImage"`
	Published       *bool         `json:"published"`
}

// ContentService provides the multi-brand content resolution logic.
type ContentService struct {
	repo      ContentRepository
	links     SiteLinkRepository
	activity  Recorder
	sanitizer *bluemonday.Policy
}

// NewContentService creates a new ContentService.
func NewContentService(repo ContentRepository, links SiteLinkRepository, activity Recorder) *ContentService {
	// UGCPolicy keeps basic formatting (links, lists, bold and so on) while
	// stripping dangerous HTML from the rich-text editor payloads.
	return &ContentService{
		repo:      repo,
		links:     links,
		activity:  activity,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// GetContent resolves the content row for a page/language pair. With a
// siteCode, the brand-linked row wins; what happens when none exists depends
// on the policy. Under FallbackGeneric the first row for the pair is returned
// regardless of its brand links, so the caller must not assume the row
// belongs to the requested brand.
func (s *ContentService) GetContent(ctx context.Context, pageID, language, siteCode string, policy FallbackPolicy) (*data.Content, error) {
	if siteCode != "" {
		content, err := s.repo.GetByPageAndSite(ctx, pageID, language, siteCode)
		if err == nil {
			return content, nil
		}
		if !data.IsNotFound(err) {
			return nil, err
		}
		if policy == FallbackStrict {
			return nil, err
		}
	}
	return s.repo.GetByPage(ctx, pageID, language)
}

// UpdateContent upserts the content row for a page/language pair. The lookup
// uses the same generic-fallback read as GetContent, so an update addressed
// to one brand can land on the shared generic row. On the create path only,
// a non-empty siteCode also links the new row to that brand; associating an
// existing row is a separate explicit call.
func (s *ContentService) UpdateContent(ctx context.Context, pageID, language string, patch ContentPatch, siteCode string, userID int64) (*data.Content, error) {
	existing, err := s.GetContent(ctx, pageID, language, siteCode, FallbackGeneric)
	if err != nil && !data.IsNotFound(err) {
		return nil, err
	}

	if existing != nil {
		s.applyPatch(existing, patch)
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.activity.Record(ctx, userID, "update", data.EntityContent, existing.ID,
			data.JSONMap{"pageId": pageID, "language": language})
		return existing, nil
	}

	content := &data.Content{
		PageID:    pageID,
		Language:  language,
		Title:     pageID,
		Metadata:  data.JSONMap{},
		Published: true,
	}
	s.applyPatch(content, patch)
	if _, err := s.repo.Create(ctx, content, siteCode); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, userID, "create", data.EntityContent, content.ID,
		data.JSONMap{"pageId": pageID, "language": language, "site": siteCode})
	return content, nil
}

// DeleteContent removes a content row; its brand links are pruned with it.
func (s *ContentService) DeleteContent(ctx context.Context, id int64, userID int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, userID, "delete", data.EntityContent, id, nil)
	return nil
}

// AssociateContentToSite links an existing content row to a brand. The
// operation is idempotent.
func (s *ContentService) AssociateContentToSite(ctx context.Context, contentID int64, siteCode string, userID int64) error {
	if !data.IsValidSiteCode(siteCode) {
		return ValidationError(fmt.Sprintf("invalid site code %q", siteCode))
	}
	if _, err := s.repo.GetByID(ctx, contentID); err != nil {
		return err
	}
	if err := s.links.Create(ctx, contentID, data.EntityContent, siteCode); err != nil {
		return err
	}
	s.activity.Record(ctx, userID, "associate", data.EntityContent, contentID,
		data.JSONMap{"site": siteCode})
	return nil
}

// RemoveContentFromSite removes a content/brand link.
func (s *ContentService) RemoveContentFromSite(ctx context.Context, contentID int64, siteCode string, userID int64) error {
	if !data.IsValidSiteCode(siteCode) {
		return ValidationError(fmt.Sprintf("invalid site code %q", siteCode))
	}
	if err := s.links.Delete(ctx, contentID, data.EntityContent, siteCode); err != nil {
		return err
	}
	s.activity.Record(ctx, userID, "dissociate", data.EntityContent, contentID,
		data.JSONMap{"site": siteCode})
	return nil
}

// ContentCount counts content rows under the collection filter.
func (s *ContentService) ContentCount(ctx context.Context, language, siteCode string) (int, error) {
	return s.repo.Count(ctx, language, siteCode)
}

func (s *ContentService) applyPatch(content *data.Content, patch ContentPatch) {
	if patch.Title != nil {
		content.Title = *patch.Title
	}
	if patch.Description != nil {
		content.Description = *patch.Description
	}
	if patch.Body != nil {
		content.Body = s.sanitizer.Sanitize(*patch.Body)
	}
	if patch.Metadata != nil {
		content.Metadata = *patch.Metadata
	}
	if patch.MetaTitle != nil {
		content.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		content.MetaDescription = *patch.MetaDescription
	}
	if patch.CanonicalURL != nil {
		content.CanonicalURL = *patch.CanonicalURL
	}
	if patch.OGImage != nil {
		content.OGImage = *patch.OGImage
	}
	if patch.Published != nil {
		content.Published = *patch.Published
	}
	content.UpdatedAt = time.Now().UTC()
}
