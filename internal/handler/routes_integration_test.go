//go:build integration

package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"go-sites-app/internal/auth"
	"go-sites-app/internal/config"
	"go-sites-app/internal/data"
	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"
	"go-sites-app/internal/translate"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type testApp struct {
	Router *chi.Mux
}

// setupIntegrationTest initializes a full application stack over an in-memory
// SQLite database.
func setupIntegrationTest(t *testing.T) (*testApp, func()) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(1)

	for _, file := range []string{
		"../../migrations/sqlite/000001_initial_schema.up.sql",
		"../../migrations/sqlite/000002_casbin_rule.up.sql",
	} {
		schema, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", file, err)
		}
		db.MustExec(string(schema))
	}

	log := logger.New(config.LogConfig{Level: "error", Format: "json"}, io.Discard)

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db.DB)
	sessionManager.Lifetime = 3 * time.Minute

	activityService := service.NewActivityService(data.NewActivityRepository(db), log)
	contentService := service.NewContentService(data.NewContentRepository(db), data.NewSiteLinkRepository(db), activityService)
	jobService := service.NewJobService(data.NewJobRepository(db), data.NewSiteLinkRepository(db), activityService)
	newsService := service.NewNewsService(data.NewNewsRepository(db), data.NewSiteLinkRepository(db), activityService)
	siteService := service.NewSiteService(data.NewSiteRepository(db), activityService)
	settingService := service.NewSettingService(data.NewSettingRepository(db), translate.New(config.TranslatorConfig{}), activityService)
	authService := service.NewAuthService(data.NewUserRepository(db), log)
	brandingService := service.NewBrandingService(activityService)

	if err := authService.EnsureBootstrapAdmin(context.Background(), "admin", "bootstrap-pw"); err != nil {
		t.Fatalf("Failed to bootstrap admin: %v", err)
	}
	if _, err := authService.CreateUser(context.Background(), "editor", "editor-pw", false); err != nil {
		t.Fatalf("Failed to create editor: %v", err)
	}

	enforcer, err := auth.NewMemoryEnforcer("../../auth_model.conf")
	if err != nil {
		t.Fatalf("Failed to create enforcer: %v", err)
	}
	auth.SeedDefaultPolicies(enforcer, log)

	handlers := Handlers{
		Content:  NewContentHandler(contentService, log),
		Job:      NewJobHandler(jobService, log),
		News:     NewNewsHandler(newsService, log),
		Site:     NewSiteHandler(siteService, log),
		Auth:     NewAuthHandler(authService, sessionManager, log),
		Settings: NewSettingsHandler(settingService, log),
		Contact:  NewContactHandler(activityService, "", log),
		Branding: NewBrandingHandler(brandingService, log),
		Admin:    NewAdminHandler(contentService, jobService, newsService, activityService, log),
	}

	router := NewRouter(handlers, sessionManager,
		middleware.Authorizer(enforcer, sessionManager),
		middleware.Error(log),
		[]string{"*"})

	app := &testApp{Router: router}
	teardown := func() {
		db.Close()
	}
	return app, teardown
}

// do performs a request against the test router, attaching the session
// cookie when one is given.
func (app *testApp) do(t *testing.T, method, path, body, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rr := httptest.NewRecorder()
	app.Router.ServeHTTP(rr, req)
	return rr
}

// login authenticates and returns the session cookie.
func (app *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	rr := app.do(t, "POST", "/api/login", `{"username":"`+username+`","password":"`+password+`"}`, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rr.Code, rr.Body.String())
	}
	cookie := rr.Header().Get("Set-Cookie")
	if cookie == "" {
		t.Fatal("login did not set a session cookie")
	}
	return strings.Split(cookie, ";")[0]
}

func TestAPI_AuthGate(t *testing.T) {
	app, teardown := setupIntegrationTest(t)
	defer teardown()

	// Anonymous callers can read but not write.
	if rr := app.do(t, "GET", "/api/jobs", "", ""); rr.Code != http.StatusOK {
		t.Errorf("public read: want 200, got %d", rr.Code)
	}
	if rr := app.do(t, "PUT", "/api/content/home", `{"title":"x"}`, ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous write: want 401, got %d", rr.Code)
	}
	if rr := app.do(t, "GET", "/api/jobs/applications", "", ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous applications list: want 401, got %d", rr.Code)
	}

	// Bad credentials are a 401 with no cookie.
	rr := app.do(t, "POST", "/api/login", `{"username":"admin","password":"wrong"}`, "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("bad login: want 401, got %d", rr.Code)
	}

	// Editors can mutate content but not settings.
	editorCookie := app.login(t, "editor", "editor-pw")
	if rr := app.do(t, "PUT", "/api/content/home?lang=pt", `{"title":"ok"}`, editorCookie); rr.Code != http.StatusOK {
		t.Errorf("editor write: want 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr := app.do(t, "GET", "/api/admin/settings", "", editorCookie); rr.Code != http.StatusForbidden {
		t.Errorf("editor settings: want 403, got %d", rr.Code)
	}

	// Admins reach the settings surface.
	adminCookie := app.login(t, "admin", "bootstrap-pw")
	if rr := app.do(t, "GET", "/api/admin/settings", "", adminCookie); rr.Code != http.StatusOK {
		t.Errorf("admin settings: want 200, got %d", rr.Code)
	}

	// GET /api/user reflects the session.
	rr = app.do(t, "GET", "/api/user", "", adminCookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("user info: want 200, got %d", rr.Code)
	}
	var userInfo struct {
		Username string `json:"username"`
		IsAdmin  bool   `json:"isAdmin"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &userInfo); err != nil {
		t.Fatalf("failed to decode user info: %v", err)
	}
	if userInfo.Username != "admin" || !userInfo.IsAdmin {
		t.Errorf("unexpected user info: %+v", userInfo)
	}

	if rr := app.do(t, "GET", "/api/user", "", ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous user info: want 401, got %d", rr.Code)
	}
}

func TestAPI_ContentResolutionFlow(t *testing.T) {
	app, teardown := setupIntegrationTest(t)
	defer teardown()
	cookie := app.login(t, "admin", "bootstrap-pw")

	if rr := app.do(t, "GET", "/api/content/home?lang=pt", "", ""); rr.Code != http.StatusNotFound {
		t.Errorf("missing page: want 404, got %d", rr.Code)
	}

	rr := app.do(t, "PUT", "/api/content/home?lang=pt", `{"title":"Bem-vindo"}`, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("create: want 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var created data.Content
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode content: %v", err)
	}

	// The plain read and the brand-filtered read both resolve to the same
	// generic row while no brand-specific row exists.
	for _, path := range []string{
		"/api/content/home?lang=pt",
		"/api/content/home?lang=pt&site=trustness",
		"/api/content/home?lang=pt&site=forense",
	} {
		rr := app.do(t, "GET", path, "", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: want 200, got %d", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Bem-vindo") {
			t.Errorf("%s: expected the generic row, got %s", path, rr.Body.String())
		}
	}

	// Another language is still missing.
	if rr := app.do(t, "GET", "/api/content/home?lang=en", "", ""); rr.Code != http.StatusNotFound {
		t.Errorf("other language: want 404, got %d", rr.Code)
	}
}

func TestAPI_JobApplicationFlow(t *testing.T) {
	app, teardown := setupIntegrationTest(t)
	defer teardown()
	cookie := app.login(t, "admin", "bootstrap-pw")

	rr := app.do(t, "POST", "/api/jobs", `{"title":"Auditor","language":"pt","active":true}`, cookie)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create job: want 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var job data.Job
	if err := json.Unmarshal(rr.Body.Bytes(), &job); err != nil {
		t.Fatalf("failed to decode job: %v", err)
	}

	// Public submission with a missing cover letter is rejected.
	rr = app.do(t, "POST", "/api/jobs/apply", `{"jobId":`+itoa(job.ID)+`,"name":"Ana","email":"ana@example.com"}`, "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("incomplete application: want 400, got %d", rr.Code)
	}

	rr = app.do(t, "POST", "/api/jobs/apply", `{"jobId":`+itoa(job.ID)+`,"name":"Ana","email":"ana@example.com","coverLetter":"hi"}`, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("application: want 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = app.do(t, "GET", "/api/jobs/applications", "", cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("list applications: want 200, got %d", rr.Code)
	}
	var apps []data.JobApplication
	if err := json.Unmarshal(rr.Body.Bytes(), &apps); err != nil {
		t.Fatalf("failed to decode applications: %v", err)
	}
	if len(apps) != 1 || apps[0].Status != data.StatusPending {
		t.Fatalf("unexpected applications: %+v", apps)
	}

	// Invalid status values leave the stored status untouched.
	rr = app.do(t, "PUT", "/api/jobs/applications/"+itoa(apps[0].ID)+"/status", `{"status":"archived"}`, cookie)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid status: want 400, got %d", rr.Code)
	}
	rr = app.do(t, "PUT", "/api/jobs/applications/"+itoa(apps[0].ID)+"/status", `{"status":"reviewing"}`, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("status update: want 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestAPI_SettingsTranslateFailsClosed(t *testing.T) {
	app, teardown := setupIntegrationTest(t)
	defer teardown()
	cookie := app.login(t, "admin", "bootstrap-pw")

	rr := app.do(t, "POST", "/api/admin/settings/translate", `{"text":"Olá","targetLanguage":"en"}`, cookie)
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("translate without key: want 503, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestAPI_ContactAndStats(t *testing.T) {
	app, teardown := setupIntegrationTest(t)
	defer teardown()

	rr := app.do(t, "POST", "/api/contact", `{"name":"Ana","email":"ana@example.com"}`, "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("incomplete contact: want 400, got %d", rr.Code)
	}
	rr = app.do(t, "POST", "/api/contact", `{"name":"Ana","email":"ana@example.com","message":"hello"}`, "")
	if rr.Code != http.StatusOK {
		t.Errorf("contact: want 200, got %d", rr.Code)
	}

	cookie := app.login(t, "admin", "bootstrap-pw")
	rr = app.do(t, "GET", "/api/admin/stats?lang=pt", "", cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("stats: want 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var stats struct {
		ContentCount   int               `json:"contentCount"`
		RecentActivity []json.RawMessage `json:"recentActivity"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if len(stats.RecentActivity) == 0 {
		t.Error("expected the contact submission in the recent activity feed")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
