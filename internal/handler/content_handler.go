package handler

import (
	"net/http"

	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"

	"github.com/go-chi/chi/v5"
)

// ContentHandler holds the dependencies for the content endpoints.
type ContentHandler struct {
	contentService *service.ContentService
	log            logger.Logger
}

// NewContentHandler creates a new ContentHandler with the given dependencies.
func NewContentHandler(cs *service.ContentService, log logger.Logger) *ContentHandler {
	return &ContentHandler{contentService: cs, log: log}
}

// getHandler resolves a page for a language and optional brand. The brand
// lookup falls back to the brand-agnostic row when no linked row exists.
func (h *ContentHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pageID := chi.URLParam(r, "pageId")
	lang := languageParam(r)
	site := r.URL.Query().Get("site")

	content, err := h.contentService.GetContent(r.Context(), pageID, lang, site, service.FallbackGeneric)
	if err != nil {
		return serviceError(err, "Failed to resolve content")
	}
	return respondJSON(w, http.StatusOK, content)
}

// updateHandler upserts a page for a language. A site parameter only takes
// effect on the create path, where it links the new row to that brand.
func (h *ContentHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pageID := chi.URLParam(r, "pageId")
	lang := languageParam(r)
	site := r.URL.Query().Get("site")
	userInfo := middleware.GetUserInfo(r.Context())

	var patch service.ContentPatch
	if appErr := decodeJSON(r, &patch); appErr != nil {
		return appErr
	}

	content, err := h.contentService.UpdateContent(r.Context(), pageID, lang, patch, site, userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to save content")
	}
	return respondJSON(w, http.StatusOK, content)
}

// deleteHandler removes a page row by id, pruning its brand links.
func (h *ContentHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "pageId")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	if err := h.contentService.DeleteContent(r.Context(), id, userInfo.UserID); err != nil {
		return serviceError(err, "Failed to delete content")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// associateHandler links an existing content row to a brand.
func (h *ContentHandler) associateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "pageId")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	var body struct {
		SiteCode string `json:"siteCode"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}

	if err := h.contentService.AssociateContentToSite(r.Context(), id, body.SiteCode, userInfo.UserID); err != nil {
		return serviceError(err, "Failed to associate content")
	}
	return respondJSON(w, http.StatusOK, map[string]string{"status": "associated"})
}

// dissociateHandler removes a content/brand link.
func (h *ContentHandler) dissociateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "pageId")
	if appErr != nil {
		return appErr
	}
	siteCode := chi.URLParam(r, "siteCode")
	userInfo := middleware.GetUserInfo(r.Context())

	if err := h.contentService.RemoveContentFromSite(r.Context(), id, siteCode, userInfo.UserID); err != nil {
		return serviceError(err, "Failed to remove content association")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
