package middleware

import (
	"encoding/json"
	"net/http"

	"go-sites-app/internal/session"

	"github.com/casbin/casbin/v2"
)

// Session keys written at login and read on every request.
const (
	SessionKeyUserID   = "user_id"
	SessionKeySubject  = "user_subject"
	SessionKeyUserRole = "user_role"
)

// Authorizer creates a new middleware for authorization.
// It resolves the caller's role from the session and checks the request
// against the Casbin policy set. Anonymous callers that are denied get a 401
// so the frontend can redirect to login; authenticated callers get a 403.
func Authorizer(e casbin.IEnforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := sm.GetString(r.Context(), SessionKeyUserRole)
			if role == "" {
				role = RoleAnonymous
			}

			userInfo := &UserInfo{
				UserID:   sm.GetInt64(r.Context(), SessionKeyUserID),
				Username: sm.GetString(r.Context(), SessionKeySubject),
				Role:     role,
			}
			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			allowed, err := e.Enforce(role, r.URL.Path, r.Method)
			if err != nil {
				writeAuthError(w, http.StatusInternalServerError, "Authorization error")
				return
			}
			if !allowed {
				if role == RoleAnonymous {
					writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				} else {
					writeAuthError(w, http.StatusForbidden, "Forbidden")
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
