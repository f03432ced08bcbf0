package handler

import (
	"errors"
	"net/http"

	"go-sites-app/internal/data"
	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"
)

// ContactHandler accepts contact form submissions. Intake is logged and
// recorded in the audit trail; no email is dispatched.
type ContactHandler struct {
	activity    service.Recorder
	notifyEmail string
	log         logger.Logger
}

// NewContactHandler creates a new ContactHandler with the given dependencies.
func NewContactHandler(activity service.Recorder, notifyEmail string, log logger.Logger) *ContactHandler {
	return &ContactHandler{activity: activity, notifyEmail: notifyEmail, log: log}
}

// submitHandler validates and records a contact form submission.
func (h *ContactHandler) submitHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message"`
		Site    string `json:"site"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	if body.Name == "" || body.Email == "" || body.Message == "" {
		return &middleware.AppError{
			Err:     errors.New("missing contact fields"),
			Message: "Name, email and message are required",
			Code:    http.StatusBadRequest,
		}
	}

	h.log.With(map[string]interface{}{
		"name":   body.Name,
		"email":  body.Email,
		"site":   body.Site,
		"notify": h.notifyEmail,
	}).Info("Contact form submission received")

	h.activity.Record(r.Context(), 0, "contact", "contact_form", 0, data.JSONMap{
		"name":    body.Name,
		"email":   body.Email,
		"subject": body.Subject,
		"site":    body.Site,
	})
	return respondJSON(w, http.StatusOK, map[string]string{"status": "received"})
}
