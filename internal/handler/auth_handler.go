package handler

import (
	"errors"
	"net/http"

	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"
	"go-sites-app/internal/session"
)

// AuthHandler holds the dependencies for the session-based auth endpoints.
type AuthHandler struct {
	authService    *service.AuthService
	sessionManager session.Manager
	log            logger.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(as *service.AuthService, sm session.Manager, log logger.Logger) *AuthHandler {
	return &AuthHandler{authService: as, sessionManager: sm, log: log}
}

// loginHandler verifies credentials and writes the user identity into the
// session. The token is renewed on login to prevent session fixation.
func (h *AuthHandler) loginHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	if body.Username == "" || body.Password == "" {
		return &middleware.AppError{
			Err:     errors.New("missing credentials"),
			Message: "Username and password are required",
			Code:    http.StatusBadRequest,
		}
	}

	user, err := h.authService.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return &middleware.AppError{Err: err, Message: "Invalid username or password", Code: http.StatusUnauthorized}
		}
		return serviceError(err, "Login failed")
	}

	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		return &middleware.AppError{Err: err, Message: "Login failed", Code: http.StatusInternalServerError}
	}
	role := middleware.RoleEditor
	if user.IsAdmin {
		role = middleware.RoleAdmin
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)
	h.sessionManager.Put(r.Context(), middleware.SessionKeySubject, user.Username)
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserRole, role)

	h.log.With(map[string]interface{}{"username": user.Username}).Info("User logged in")
	return respondJSON(w, http.StatusOK, map[string]interface{}{
		"username": user.Username,
		"isAdmin":  user.IsAdmin,
	})
}

// logoutHandler destroys the session. Logging out an anonymous session is a
// no-op that still succeeds.
func (h *AuthHandler) logoutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		return &middleware.AppError{Err: err, Message: "Logout failed", Code: http.StatusInternalServerError}
	}
	return respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// userHandler reports the current session identity.
func (h *AuthHandler) userHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())
	if !userInfo.Authenticated() {
		return &middleware.AppError{
			Err:     errors.New("no active session"),
			Message: "Not authenticated",
			Code:    http.StatusUnauthorized,
		}
	}
	return respondJSON(w, http.StatusOK, map[string]interface{}{
		"username": userInfo.Username,
		"isAdmin":  userInfo.Role == middleware.RoleAdmin,
	})
}
