package service

import (
	"context"
	"go-sites-app/internal/data"
	"go-sites-app/internal/logger"
)

// recentActivityLimit is how many audit entries the dashboard shows.
const recentActivityLimit = 5

// ActivityRepository defines the storage interface for the audit trail.
type ActivityRepository interface {
	Create(ctx context.Context, entry *data.ActivityLog) error
	Recent(ctx context.Context, limit int) ([]*data.ActivityLog, error)
}

// Recorder is the write side of the audit trail, injected into every service
// that performs admin mutations.
type Recorder interface {
	Record(ctx context.Context, userID int64, action, entityType string, entityID int64, details data.JSONMap)
}

// ActivityService provides the append-only audit trail. Recording never fails
// from the caller's perspective; storage errors are logged and swallowed so an
// audit hiccup cannot abort the mutation it describes.
type ActivityService struct {
	repo ActivityRepository
	log  logger.Logger
}

// NewActivityService creates a new ActivityService.
func NewActivityService(repo ActivityRepository, log logger.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

// Record appends an audit entry.
func (s *ActivityService) Record(ctx context.Context, userID int64, action, entityType string, entityID int64, details data.JSONMap) {
	entry := &data.ActivityLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error(err, "Failed to record activity")
	}
}

// Recent returns the 5 most recent audit entries, newest first.
func (s *ActivityService) Recent(ctx context.Context) ([]*data.ActivityLog, error) {
	return s.repo.Recent(ctx, recentActivityLimit)
}
