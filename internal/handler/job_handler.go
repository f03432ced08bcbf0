package handler

import (
	"net/http"
	"strconv"

	"go-sites-app/internal/data"
	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"
)

// JobHandler holds the dependencies for the job endpoints.
type JobHandler struct {
	jobService *service.JobService
	log        logger.Logger
}

// NewJobHandler creates a new JobHandler with the given dependencies.
func NewJobHandler(js *service.JobService, log logger.Logger) *JobHandler {
	return &JobHandler{jobService: js, log: log}
}

// listHandler returns postings for a language, optionally filtered to the
// rows linked to one brand. The brand filter is strict, there is no fallback.
func (h *JobHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	jobs, err := h.jobService.ListJobs(r.Context(), languageParam(r), r.URL.Query().Get("site"))
	if err != nil {
		return serviceError(err, "Failed to list jobs")
	}
	if jobs == nil {
		jobs = []*data.Job{}
	}
	return respondJSON(w, http.StatusOK, jobs)
}

// featuredHandler returns up to 4 recent active postings.
func (h *JobHandler) featuredHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	jobs, err := h.jobService.FeaturedJobs(r.Context(), languageParam(r), r.URL.Query().Get("site"))
	if err != nil {
		return serviceError(err, "Failed to list featured jobs")
	}
	if jobs == nil {
		jobs = []*data.Job{}
	}
	return respondJSON(w, http.StatusOK, jobs)
}

// getHandler returns a single posting by id.
func (h *JobHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		return appErr
	}
	job, err := h.jobService.GetJob(r.Context(), id)
	if err != nil {
		return serviceError(err, "Failed to load job")
	}
	return respondJSON(w, http.StatusOK, job)
}

// createHandler inserts a posting.
func (h *JobHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var job data.Job
	if appErr := decodeJSON(r, &job); appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	created, err := h.jobService.CreateJob(r.Context(), &job, userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to create job")
	}
	return respondJSON(w, http.StatusCreated, created)
}

// updateHandler replaces a posting.
func (h *JobHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		return appErr
	}
	var job data.Job
	if appErr := decodeJSON(r, &job); appErr != nil {
		return appErr
	}
	job.ID = id
	userInfo := middleware.GetUserInfo(r.Context())

	updated, err := h.jobService.UpdateJob(r.Context(), &job, userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to update job")
	}
	return respondJSON(w, http.StatusOK, updated)
}

// deleteHandler removes a posting. Applications referencing it are kept.
func (h *JobHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	if err := h.jobService.DeleteJob(r.Context(), id, userInfo.UserID); err != nil {
		return serviceError(err, "Failed to delete job")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// applyHandler accepts a public application submission.
func (h *JobHandler) applyHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var input service.ApplicationInput
	if appErr := decodeJSON(r, &input); appErr != nil {
		return appErr
	}

	app, err := h.jobService.Apply(r.Context(), input)
	if err != nil {
		return serviceError(err, "Failed to submit application")
	}
	return respondJSON(w, http.StatusCreated, app)
}

// applicationsHandler lists submissions for the admin area, optionally
// filtered by posting via the jobId query parameter.
func (h *JobHandler) applicationsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var jobID *int64
	if raw := r.URL.Query().Get("jobId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return &middleware.AppError{Err: err, Message: "Invalid jobId", Code: http.StatusBadRequest}
		}
		jobID = &id
	}

	apps, err := h.jobService.Applications(r.Context(), jobID)
	if err != nil {
		return serviceError(err, "Failed to list applications")
	}
	if apps == nil {
		apps = []*data.JobApplication{}
	}
	return respondJSON(w, http.StatusOK, apps)
}

// applicationStatusHandler transitions an application within the fixed enum.
func (h *JobHandler) applicationStatusHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		return appErr
	}
	var body struct {
		Status string `json:"status"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	app, err := h.jobService.UpdateApplicationStatus(r.Context(), id, data.ApplicationStatus(body.Status), userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to update application status")
	}
	return respondJSON(w, http.StatusOK, app)
}
