package handler

import (
	"net/http"

	"go-sites-app/internal/data"
	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"
)

// SettingsHandler holds the dependencies for the admin settings endpoints.
type SettingsHandler struct {
	settingService *service.SettingService
	log            logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler with the given dependencies.
func NewSettingsHandler(ss *service.SettingService, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{settingService: ss, log: log}
}

// listHandler returns settings, optionally restricted by the lang query
// parameter. No parameter means every language.
func (h *SettingsHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	settings, err := h.settingService.ListSettings(r.Context(), r.URL.Query().Get("lang"))
	if err != nil {
		return serviceError(err, "Failed to list settings")
	}
	if settings == nil {
		settings = []*data.Setting{}
	}
	return respondJSON(w, http.StatusOK, settings)
}

// upsertHandler stores a setting value by key and language.
func (h *SettingsHandler) upsertHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var body struct {
		Key      string `json:"key"`
		Language string `json:"language"`
		Value    string `json:"value"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	setting, err := h.settingService.UpsertSetting(r.Context(), body.Key, body.Language, body.Value, userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to save setting")
	}
	return respondJSON(w, http.StatusOK, setting)
}

// translateHandler proxies a UI string through the external translation API.
func (h *SettingsHandler) translateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var body struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"targetLanguage"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}

	translated, err := h.settingService.TranslateSetting(r.Context(), body.Text, body.TargetLanguage)
	if err != nil {
		return serviceError(err, "Translation failed")
	}
	return respondJSON(w, http.StatusOK, map[string]string{"translated": translated})
}

// contactInfoHandler returns the shared contact block used in the frontend
// footers. Public read.
func (h *SettingsHandler) contactInfoHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	info, err := h.settingService.ContactInfo(r.Context())
	if err != nil {
		return serviceError(err, "Failed to load contact info")
	}
	return respondJSON(w, http.StatusOK, info)
}

// updateContactInfoHandler replaces the shared contact block.
func (h *SettingsHandler) updateContactInfoHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var info data.JSONMap
	if appErr := decodeJSON(r, &info); appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	saved, err := h.settingService.UpdateContactInfo(r.Context(), info, userInfo.UserID)
	if err != nil {
		return serviceError(err, "Failed to save contact info")
	}
	return respondJSON(w, http.StatusOK, saved)
}
