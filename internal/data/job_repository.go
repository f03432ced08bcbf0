package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const jobColumns = `id, title, location, location_type, employment_type, level, salary,
	summary, description, requirements, benefits, active, featured, language, slug,
	site_code, application_count, created_at, updated_at`

// JobRepository handles database operations for job postings and their
// applications.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// List returns all jobs for a language, newest first. A non-empty siteCode is
// a strict filter on the content_sites link table: jobs with no link to that
// brand are excluded, with no fallback to unlinked rows.
func (r *JobRepository) List(ctx context.Context, language, siteCode string) ([]*Job, error) {
	var jobs []*Job
	var err error
	if siteCode == "" {
		err = r.db.SelectContext(ctx, &jobs,
			`SELECT `+jobColumns+` FROM jobs WHERE language = ? ORDER BY created_at DESC, id DESC`,
			language)
	} else {
		err = r.db.SelectContext(ctx, &jobs,
			`SELECT j.* FROM jobs j
			 JOIN content_sites cs ON cs.entity_id = j.id AND cs.entity_type = ?
			 WHERE j.language = ? AND cs.site_code = ?
			 ORDER BY j.created_at DESC, j.id DESC`,
			EntityJob, language, siteCode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Featured returns the 4 most recent active jobs under the same filter as List.
func (r *JobRepository) Featured(ctx context.Context, language, siteCode string) ([]*Job, error) {
	var jobs []*Job
	var err error
	if siteCode == "" {
		err = r.db.SelectContext(ctx, &jobs,
			`SELECT `+jobColumns+` FROM jobs WHERE language = ? AND active = ?
			 ORDER BY created_at DESC, id DESC LIMIT 4`,
			language, true)
	} else {
		err = r.db.SelectContext(ctx, &jobs,
			`SELECT j.* FROM jobs j
			 JOIN content_sites cs ON cs.entity_id = j.id AND cs.entity_type = ?
			 WHERE j.language = ? AND j.active = ? AND cs.site_code = ?
			 ORDER BY j.created_at DESC, j.id DESC LIMIT 4`,
			EntityJob, language, true, siteCode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list featured jobs: %w", err)
	}
	return jobs, nil
}

// GetByID retrieves a single job by its ID.
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*Job, error) {
	var job Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("job %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}
	return &job, nil
}

// Create inserts a new job posting and returns its ID.
func (r *JobRepository) Create(ctx context.Context, job *Job) (int64, error) {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	res, err := r.db.NamedExecContext(ctx, `INSERT INTO jobs
		(title, location, location_type, employment_type, level, salary, summary,
		 description, requirements, benefits, active, featured, language, slug,
		 site_code, application_count, created_at, updated_at)
		VALUES (:title, :location, :location_type, :employment_type, :level, :salary, :summary,
		 :description, :requirements, :benefits, :active, :featured, :language, :slug,
		 :site_code, :application_count, :created_at, :updated_at)`, job)
	if err != nil {
		return 0, fmt.Errorf("failed to insert job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted job id: %w", err)
	}
	job.ID = id
	return id, nil
}

// Update persists changes to an existing job.
func (r *JobRepository) Update(ctx context.Context, job *Job) error {
	job.UpdatedAt = time.Now().UTC()
	query := `UPDATE jobs SET title = :title, location = :location, location_type = :location_type,
		employment_type = :employment_type, level = :level, salary = :salary, summary = :summary,
		description = :description, requirements = :requirements, benefits = :benefits,
		active = :active, featured = :featured, language = :language, slug = :slug,
		site_code = :site_code, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, job)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("job %d: %w", job.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a job and prunes its site links in one transaction.
// Applications referencing the job are left untouched.
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("job %d: %w", id, ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM content_sites WHERE entity_id = ? AND entity_type = ?`, id, EntityJob)
	if err != nil {
		return fmt.Errorf("failed to prune job site links: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of jobs under the same filter as List.
func (r *JobRepository) Count(ctx context.Context, language, siteCode string) (int, error) {
	var count int
	var err error
	if siteCode == "" {
		err = r.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM jobs WHERE language = ?`, language)
	} else {
		err = r.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM jobs j
			 JOIN content_sites cs ON cs.entity_id = j.id AND cs.entity_type = ?
			 WHERE j.language = ? AND cs.site_code = ?`,
			EntityJob, language, siteCode)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// CreateApplication inserts a job application and bumps the posting's
// application counter. The counter update is best effort; the posting may no
// longer exist.
func (r *JobRepository) CreateApplication(ctx context.Context, app *JobApplication) (int64, error) {
	app.AppliedAt = time.Now().UTC()
	res, err := r.db.NamedExecContext(ctx, `INSERT INTO job_applications
		(job_id, name, email, phone, cover_letter, resume_url, status, applied_at)
		VALUES (:job_id, :name, :email, :phone, :cover_letter, :resume_url, :status, :applied_at)`, app)
	if err != nil {
		return 0, fmt.Errorf("failed to insert job application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted application id: %w", err)
	}
	app.ID = id

	_, _ = r.db.ExecContext(ctx,
		`UPDATE jobs SET application_count = application_count + 1 WHERE id = ?`, app.JobID)

	return id, nil
}

// ListApplications returns applications, newest first, optionally filtered by
// posting.
func (r *JobRepository) ListApplications(ctx context.Context, jobID *int64) ([]*JobApplication, error) {
	var apps []*JobApplication
	var err error
	if jobID == nil {
		err = r.db.SelectContext(ctx, &apps,
			`SELECT id, job_id, name, email, phone, cover_letter, resume_url, status, applied_at
			 FROM job_applications ORDER BY applied_at DESC, id DESC`)
	} else {
		err = r.db.SelectContext(ctx, &apps,
			`SELECT id, job_id, name, email, phone, cover_letter, resume_url, status, applied_at
			 FROM job_applications WHERE job_id = ? ORDER BY applied_at DESC, id DESC`, *jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}
	return apps, nil
}

// GetApplication retrieves a single application by its ID.
func (r *JobRepository) GetApplication(ctx context.Context, id int64) (*JobApplication, error) {
	var app JobApplication
	err := r.db.GetContext(ctx, &app,
		`SELECT id, job_id, name, email, phone, cover_letter, resume_url, status, applied_at
		 FROM job_applications WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}
	return &app, nil
}

// UpdateApplicationStatus sets the status of an application.
func (r *JobRepository) UpdateApplicationStatus(ctx context.Context, id int64, status ApplicationStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE job_applications SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	return nil
}
