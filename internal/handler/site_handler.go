package handler

import (
	"net/http"

	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"

	"github.com/go-chi/chi/v5"
)

// SiteHandler holds the dependencies for the brand configuration endpoints.
type SiteHandler struct {
	siteService *service.SiteService
	log         logger.Logger
}

// NewSiteHandler creates a new SiteHandler with the given dependencies.
func NewSiteHandler(ss *service.SiteService, log logger.Logger) *SiteHandler {
	return &SiteHandler{siteService: ss, log: log}
}

// listHandler returns all brand rows.
func (h *SiteHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	sites, err := h.siteService.ListSites(r.Context())
	if err != nil {
		return serviceError(err, "Failed to list sites")
	}
	return respondJSON(w, http.StatusOK, sites)
}

// getHandler returns one brand by code. Unknown codes are a 400, not a 404,
// because the code set is closed.
func (h *SiteHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	site, err := h.siteService.GetSite(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		return serviceError(err, "Failed to load site")
	}
	return respondJSON(w, http.StatusOK, site)
}

// updateHandler applies a partial update to a brand row.
func (h *SiteHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var patch service.SitePatch
	if appErr := decodeJSON(r, &patch); appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	site, err := h.siteService.UpdateSite(r.Context(), chi.URLParam(r, "code"), patch, userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to update site")
	}
	return respondJSON(w, http.StatusOK, site)
}
