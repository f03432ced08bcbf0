package handler

import (
	"net/http"

	"go-sites-app/internal/data"
	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"
)

// AdminHandler serves the dashboard endpoint backing the admin frontend.
type AdminHandler struct {
	contentService  *service.ContentService
	jobService      *service.JobService
	newsService     *service.NewsService
	activityService *service.ActivityService
	log             logger.Logger
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(cs *service.ContentService, js *service.JobService, ns *service.NewsService, as *service.ActivityService, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		contentService:  cs,
		jobService:      js,
		newsService:     ns,
		activityService: as,
		log:             log,
	}
}

// statsHandler returns entity counts under the usual collection filter plus
// the most recent audit entries. Counts are display-only approximations.
func (h *AdminHandler) statsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	lang := languageParam(r)
	site := r.URL.Query().Get("site")

	contentCount, err := h.contentService.ContentCount(r.Context(), lang, site)
	if err != nil {
		return serviceError(err, "Failed to count content")
	}
	jobCount, err := h.jobService.JobCount(r.Context(), lang, site)
	if err != nil {
		return serviceError(err, "Failed to count jobs")
	}
	newsCount, err := h.newsService.NewsCount(r.Context(), lang, site)
	if err != nil {
		return serviceError(err, "Failed to count news")
	}
	recent, err := h.activityService.Recent(r.Context())
	if err != nil {
		return serviceError(err, "Failed to load recent activity")
	}
	if recent == nil {
		recent = []*data.ActivityLog{}
	}

	return respondJSON(w, http.StatusOK, map[string]interface{}{
		"contentCount":   contentCount,
		"jobCount":       jobCount,
		"newsCount":      newsCount,
		"recentActivity": recent,
	})
}
