package service

import (
	"context"
	"fmt"
	"go-sites-app/internal/data"
)

// JobRepository defines the storage interface for job postings and their
// applications.
type JobRepository interface {
	List(ctx context.Context, language, siteCode string) ([]*data.Job, error)
	Featured(ctx context.Context, language, siteCode string) ([]*data.Job, error)
	GetByID(ctx context.Context, id int64) (*data.Job, error)
	Create(ctx context.Context, job *data.Job) (int64, error)
	Update(ctx context.Context, job *data.Job) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, language, siteCode string) (int, error)
	CreateApplication(ctx context.Context, app *data.JobApplication) (int64, error)
	ListApplications(ctx context.Context, jobID *int64) ([]*data.JobApplication, error)
	GetApplication(ctx context.Context, id int64) (*data.JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status data.ApplicationStatus) error
}

// ApplicationInput is a public job application submission.
type ApplicationInput struct {
	JobID       int64   `json:"jobId"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	CoverLetter string  `json:"coverLetter"`
	ResumeURL   *string `json:"resumeUrl"`
}

// JobService provides business logic for job postings. Listing applies the
// strict brand filter: a siteCode restricts results to linked rows with no
// fallback, unlike single-page content resolution.
type JobService struct {
	repo     JobRepository
	links    SiteLinkRepository
	activity Recorder
}

// NewJobService creates a new JobService.
func NewJobService(repo JobRepository, links SiteLinkRepository, activity Recorder) *JobService {
	return &JobService{repo: repo, links: links, activity: activity}
}

// ListJobs returns jobs for a language, newest first, optionally restricted
// to one brand.
func (s *JobService) ListJobs(ctx context.Context, language, siteCode string) ([]*data.Job, error) {
	return s.repo.List(ctx, language, siteCode)
}

// FeaturedJobs returns at most 4 recent active jobs under the same filter.
func (s *JobService) FeaturedJobs(ctx context.Context, language, siteCode string) ([]*data.Job, error) {
	return s.repo.Featured(ctx, language, siteCode)
}

// GetJob retrieves a single posting.
func (s *JobService) GetJob(ctx context.Context, id int64) (*data.Job, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateJob inserts a posting. A site-code hint on the posting also creates
// the brand link so the posting shows up in that brand's listing.
func (s *JobService) CreateJob(ctx context.Context, job *data.Job, userID int64) (*data.Job, error) {
	if job.Title == "" {
		return nil, ValidationError("job title is required")
	}
	if job.Language == "" {
		return nil, ValidationError("job language is required")
	}
	if _, err := s.repo.Create(ctx, job); err != nil {
		return nil, err
	}
	if job.SiteCode != nil && data.IsValidSiteCode(*job.SiteCode) {
		if err := s.links.Create(ctx, job.ID, data.EntityJob, *job.SiteCode); err != nil {
			return nil, err
		}
	}
	s.activity.Record(ctx, userID, "create", data.EntityJob, job.ID,
		data.JSONMap{"title": job.Title})
	return job, nil
}

// UpdateJob persists changes to a posting.
func (s *JobService) UpdateJob(ctx context.Context, job *data.Job, userID int64) (*data.Job, error) {
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, userID, "update", data.EntityJob, job.ID,
		data.JSONMap{"title": job.Title})
	return job, nil
}

// DeleteJob hard-deletes a posting and prunes its brand links. Applications
// referencing the posting are kept.
func (s *JobService) DeleteJob(ctx context.Context, id int64, userID int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, userID, "delete", data.EntityJob, id, nil)
	return nil
}

// JobCount counts postings under the collection filter.
func (s *JobService) JobCount(ctx context.Context, language, siteCode string) (int, error) {
	return s.repo.Count(ctx, language, siteCode)
}

// Apply records a public job application. jobId, name, email and coverLetter
// are required; nothing guards against the same person applying twice.
func (s *JobService) Apply(ctx context.Context, input ApplicationInput) (*data.JobApplication, error) {
	if input.JobID == 0 {
		return nil, ValidationError("jobId is required")
	}
	if input.Name == "" {
		return nil, ValidationError("name is required")
	}
	if input.Email == "" {
		return nil, ValidationError("email is required")
	}
	if input.CoverLetter == "" {
		return nil, ValidationError("coverLetter is required")
	}

	app := &data.JobApplication{
		JobID:       input.JobID,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		CoverLetter: input.CoverLetter,
		ResumeURL:   input.ResumeURL,
		Status:      data.StatusPending,
	}
	if _, err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, 0, "apply", data.EntityJob, app.JobID,
		data.JSONMap{"applicant": app.Email})
	return app, nil
}

// Applications lists submissions for the admin area, optionally filtered by
// posting.
func (s *JobService) Applications(ctx context.Context, jobID *int64) ([]*data.JobApplication, error) {
	return s.repo.ListApplications(ctx, jobID)
}

// UpdateApplicationStatus transitions an application within the fixed enum.
// Any other value is rejected and the stored status is untouched.
func (s *JobService) UpdateApplicationStatus(ctx context.Context, id int64, status data.ApplicationStatus, userID int64) (*data.JobApplication, error) {
	if err := status.IsValid(); err != nil {
		return nil, ValidationError(fmt.Sprintf("invalid status %q", string(status)))
	}
	if err := s.repo.UpdateApplicationStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, userID, "update_status", "application", id,
		data.JSONMap{"status": string(status)})
	return s.repo.GetApplication(ctx, id)
}
