package handler

import (
	"net/http"

	"go-sites-app/internal/data"
	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"
)

// NewsHandler holds the dependencies for the news endpoints.
type NewsHandler struct {
	newsService *service.NewsService
	log         logger.Logger
}

// NewNewsHandler creates a new NewsHandler with the given dependencies.
func NewNewsHandler(ns *service.NewsService, log logger.Logger) *NewsHandler {
	return &NewsHandler{newsService: ns, log: log}
}

// listHandler returns articles for a language, newest first by publish date.
func (h *NewsHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	items, err := h.newsService.ListNews(r.Context(), languageParam(r), r.URL.Query().Get("site"))
	if err != nil {
		return serviceError(err, "Failed to list news")
	}
	if items == nil {
		items = []*data.NewsItem{}
	}
	return respondJSON(w, http.StatusOK, items)
}

// latestHandler returns the 3 most recent articles.
func (h *NewsHandler) latestHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	items, err := h.newsService.LatestNews(r.Context(), languageParam(r), r.URL.Query().Get("site"))
	if err != nil {
		return serviceError(err, "Failed to list latest news")
	}
	if items == nil {
		items = []*data.NewsItem{}
	}
	return respondJSON(w, http.StatusOK, items)
}

// getHandler returns a single article by id.
func (h *NewsHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		return appErr
	}
	item, err := h.newsService.GetNewsItem(r.Context(), id)
	if err != nil {
		return serviceError(err, "Failed to load news item")
	}
	return respondJSON(w, http.StatusOK, item)
}

// createHandler inserts an article.
func (h *NewsHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var item data.NewsItem
	if appErr := decodeJSON(r, &item); appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	created, err := h.newsService.CreateNewsItem(r.Context(), &item, userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to create news item")
	}
	return respondJSON(w, http.StatusCreated, created)
}

// updateHandler replaces an article.
func (h *NewsHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		return appErr
	}
	var item data.NewsItem
	if appErr := decodeJSON(r, &item); appErr != nil {
		return appErr
	}
	item.ID = id
	userInfo := middleware.GetUserInfo(r.Context())

	updated, err := h.newsService.UpdateNewsItem(r.Context(), &item, userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to update news item")
	}
	return respondJSON(w, http.StatusOK, updated)
}

// deleteHandler removes an article and its brand links.
func (h *NewsHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	if err := h.newsService.DeleteNewsItem(r.Context(), id, userInfo.UserID); err != nil {
		return serviceError(err, "Failed to delete news item")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
