package service

import (
	"context"
	"fmt"
	"go-sites-app/internal/data"
	"sort"
	"sync"
	"time"
)

// BrandingFile is a registry entry for a brand asset (logo, favicon, media
// kit piece). Only metadata is tracked; nothing is uploaded or stored.
type BrandingFile struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	SiteCode   string    `json:"siteCode"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// BrandingService keeps the branding file registry in process memory. It is
// mutex-guarded because handlers run concurrently.
type BrandingService struct {
	mu       sync.RWMutex
	files    map[int64]*BrandingFile
	nextID   int64
	activity Recorder
}

// NewBrandingService creates an empty branding registry.
func NewBrandingService(activity Recorder) *BrandingService {
	return &BrandingService{files: make(map[int64]*BrandingFile), activity: activity}
}

// List returns registered files, optionally restricted to one brand.
func (s *BrandingService) List(siteCode string) []*BrandingFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var files []*BrandingFile
	for _, f := range s.files {
		if siteCode != "" && f.SiteCode != siteCode {
			continue
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files
}

// Create registers a file entry.
func (s *BrandingService) Create(ctx context.Context, file *BrandingFile, userID int64) (*BrandingFile, error) {
	if file.Name == "" {
		return nil, ValidationError("file name is required")
	}
	if file.SiteCode != "" && !data.IsValidSiteCode(file.SiteCode) {
		return nil, ValidationError(fmt.Sprintf("invalid site code %q", file.SiteCode))
	}
	s.mu.Lock()
	s.nextID++
	file.ID = s.nextID
	file.UploadedAt = time.Now().UTC()
	s.files[file.ID] = file
	s.mu.Unlock()

	s.activity.Record(ctx, userID, "create", "branding_file", file.ID,
		data.JSONMap{"name": file.Name})
	return file, nil
}

// Update replaces the mutable fields of a registered file.
func (s *BrandingService) Update(ctx context.Context, id int64, name, kind, url string, userID int64) (*BrandingFile, error) {
	s.mu.Lock()
	file, ok := s.files[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("branding file %d: %w", id, data.ErrNotFound)
	}
	if name != "" {
		file.Name = name
	}
	if kind != "" {
		file.Kind = kind
	}
	if url != "" {
		file.URL = url
	}
	s.mu.Unlock()

	s.activity.Record(ctx, userID, "update", "branding_file", id, nil)
	return file, nil
}

// Delete removes a registered file.
func (s *BrandingService) Delete(ctx context.Context, id int64, userID int64) error {
	s.mu.Lock()
	if _, ok := s.files[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("branding file %d: %w", id, data.ErrNotFound)
	}
	delete(s.files, id)
	s.mu.Unlock()

	s.activity.Record(ctx, userID, "delete", "branding_file", id, nil)
	return nil
}
