package service

import (
	"context"
	"go-sites-app/internal/data"
)

// SiteRepository defines the storage interface for brand configuration.
type SiteRepository interface {
	List(ctx context.Context) ([]*data.Site, error)
	GetByCode(ctx context.Context, code string) (*data.Site, error)
	Update(ctx context.Context, site *data.Site) error
}

// SitePatch carries a partial brand-config update; nil fields are left alone.
type SitePatch struct {
	Name           *string       `json:"name"`
	Domain         *string       `json:"domain"`
	PrimaryColor   *string       `json:"primaryColor"`
	SecondaryColor *string       `json:"secondaryColor"`
	Metadata       *data.JSONMap `json:"metadata"`
	Social         *data.JSONMap `json:"social"`
	ContactEmail   *string       `json:"contactEmail"`
	ContactPhone   *string       `json:"contactPhone"`
	Address        *string       `json:"address"`
}

// SiteService provides brand configuration reads and admin updates. Brands
// are seeded, not created at runtime.
type SiteService struct {
	repo     SiteRepository
	activity Recorder
}

// NewSiteService creates a new SiteService.
func NewSiteService(repo SiteRepository, activity Recorder) *SiteService {
	return &SiteService{repo: repo, activity: activity}
}

// ListSites returns all brand rows.
func (s *SiteService) ListSites(ctx context.Context) ([]*data.Site, error) {
	return s.repo.List(ctx)
}

// GetSite retrieves one brand by code.
func (s *SiteService) GetSite(ctx context.Context, code string) (*data.Site, error) {
	if !data.IsValidSiteCode(code) {
		return nil, ValidationError("invalid site code")
	}
	return s.repo.GetByCode(ctx, code)
}

// UpdateSite applies a partial update to a brand row.
func (s *SiteService) UpdateSite(ctx context.Context, code string, patch SitePatch, userID int64) (*data.Site, error) {
	site, err := s.GetSite(ctx, code)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		site.Name = *patch.Name
	}
	if patch.Domain != nil {
		site.Domain = *patch.Domain
	}
	if patch.PrimaryColor != nil {
		site.PrimaryColor = *patch.PrimaryColor
	}
	if patch.SecondaryColor != nil {
		site.SecondaryColor = *patch.SecondaryColor
	}
	if patch.Metadata != nil {
		site.Metadata = *patch.Metadata
	}
	if patch.Social != nil {
		site.Social = *patch.Social
	}
	if patch.ContactEmail != nil {
		site.ContactEmail = patch.ContactEmail
	}
	if patch.ContactPhone != nil {
		site.ContactPhone = patch.ContactPhone
	}
	if patch.Address != nil {
		site.Address = patch.Address
	}
	if err := s.repo.Update(ctx, site); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, userID, "update", "site", site.ID,
		data.JSONMap{"code": site.Code})
	return site, nil
}
