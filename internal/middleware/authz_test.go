//go:build unit

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/util"
)

// stubSession is a minimal session.Manager for middleware tests.
type stubSession struct {
	values map[string]interface{}
}

func (s *stubSession) LoadAndSave(next http.Handler) http.Handler { return next }
func (s *stubSession) Put(ctx context.Context, key string, val interface{}) {
	s.values[key] = val
}
func (s *stubSession) GetString(ctx context.Context, key string) string {
	v, _ := s.values[key].(string)
	return v
}
func (s *stubSession) GetInt64(ctx context.Context, key string) int64 {
	v, _ := s.values[key].(int64)
	return v
}
func (s *stubSession) GetBool(ctx context.Context, key string) bool {
	v, _ := s.values[key].(bool)
	return v
}
func (s *stubSession) RenewToken(ctx context.Context) error { return nil }
func (s *stubSession) Destroy(ctx context.Context) error {
	s.values = map[string]interface{}{}
	return nil
}
func (s *stubSession) Remove(ctx context.Context, key string) { delete(s.values, key) }

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()
	e, err := casbin.NewEnforcer("../../auth_model.conf")
	if err != nil {
		t.Fatalf("failed to create enforcer: %v", err)
	}
	e.AddFunction("keyMatch2", util.KeyMatch2Func)
	e.AddPolicy("anonymous", "/api/jobs", "GET")
	e.AddPolicy("anonymous", "/api/jobs/[0-9]+", "GET")
	e.AddPolicy("editor", "/api/jobs", "POST")
	e.AddPolicy("editor", "/api/jobs/applications", "GET")
	e.AddRoleForUser("editor", "anonymous")
	return e
}

func TestAuthorizer(t *testing.T) {
	enforcer := newTestEnforcer(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name       string
		role       string
		method     string
		path       string
		wantStatus int
	}{
		{"anonymous allowed on public read", "", "GET", "/api/jobs", http.StatusOK},
		{"anonymous allowed on numeric id", "", "GET", "/api/jobs/42", http.StatusOK},
		{"anonymous denied gets 401", "", "POST", "/api/jobs", http.StatusUnauthorized},
		{"numeric pattern does not cover applications", "", "GET", "/api/jobs/applications", http.StatusUnauthorized},
		{"editor allowed on mutation", RoleEditor, "POST", "/api/jobs", http.StatusOK},
		{"editor inherits anonymous reads", RoleEditor, "GET", "/api/jobs", http.StatusOK},
		{"editor denied gets 403", RoleEditor, "DELETE", "/api/jobs/42", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sm := &stubSession{values: map[string]interface{}{}}
			if tc.role != "" {
				sm.values[SessionKeyUserRole] = tc.role
				sm.values[SessionKeySubject] = "someone"
				sm.values[SessionKeyUserID] = int64(7)
			}

			handler := Authorizer(enforcer, sm)(next)
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("want status %d; got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

func TestGetUserInfo_DefaultsToAnonymous(t *testing.T) {
	info := GetUserInfo(context.Background())
	if info.Role != RoleAnonymous {
		t.Errorf("expected anonymous role, got %q", info.Role)
	}
	if info.Authenticated() {
		t.Error("anonymous must not count as authenticated")
	}
}
