package handler

import (
	"net/http"

	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"
)

// BrandingHandler exposes the in-memory brand asset registry. Entries are
// metadata only; there is no upload or object storage behind them.
type BrandingHandler struct {
	brandingService *service.BrandingService
	log             logger.Logger
}

// NewBrandingHandler creates a new BrandingHandler with the given dependencies.
func NewBrandingHandler(bs *service.BrandingService, log logger.Logger) *BrandingHandler {
	return &BrandingHandler{brandingService: bs, log: log}
}

// listHandler returns registered files, optionally filtered by brand.
func (h *BrandingHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	files := h.brandingService.List(r.URL.Query().Get("site"))
	if files == nil {
		files = []*service.BrandingFile{}
	}
	return respondJSON(w, http.StatusOK, files)
}

// createHandler registers a file entry.
func (h *BrandingHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var file service.BrandingFile
	if appErr := decodeJSON(r, &file); appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	created, err := h.brandingService.Create(r.Context(), &file, userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to register branding file")
	}
	return respondJSON(w, http.StatusCreated, created)
}

// updateHandler edits a registered file entry.
func (h *BrandingHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		return appErr
	}
	var body struct {
		Name string `json:"name"`
		Kind string `json:"kind"`
		URL  string `json:"url"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	file, err := h.brandingService.Update(r.Context(), id, body.Name, body.Kind, body.URL, userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to update branding file")
	}
	return respondJSON(w, http.StatusOK, file)
}

// deleteHandler removes a registered file entry.
func (h *BrandingHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	if err := h.brandingService.Delete(r.Context(), id, userInfo.UserID); err != nil {
		return serviceError(err, "Failed to delete branding file")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
