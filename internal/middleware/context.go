package middleware

import "context"

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey = contextKey("user")

// Role names used as authorization subjects. Editors are any authenticated
// users; admins additionally carry the is_admin flag.
const (
	RoleAnonymous = "anonymous"
	RoleEditor    = "editor"
	RoleAdmin     = "admin"
)

// UserInfo represents the essential user information stored in the session and request context.
type UserInfo struct {
	UserID   int64
	Username string
	Role     string
}

// Authenticated reports whether the request carries a logged-in session.
func (u *UserInfo) Authenticated() bool {
	return u.Role != RoleAnonymous && u.Username != ""
}

// GetUserInfo retrieves the user information from the request context.
func GetUserInfo(ctx context.Context) *UserInfo {
	if userInfo, ok := ctx.Value(userContextKey).(*UserInfo); ok {
		return userInfo
	}
	// Return an anonymous user if no user info is found in the context.
	return &UserInfo{Role: RoleAnonymous}
}

// SetUserInfo adds the user information to the request context.
func SetUserInfo(ctx context.Context, userInfo *UserInfo) context.Context {
	return context.WithValue(ctx, userContextKey, userInfo)
}
