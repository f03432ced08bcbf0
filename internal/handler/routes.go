package handler

import (
	"net/http"

	appmw "go-sites-app/internal/middleware"
	"go-sites-app/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers bundles the endpoint handlers the router mounts.
type Handlers struct {
	Content  *ContentHandler
	Job      *JobHandler
	News     *NewsHandler
	Site     *SiteHandler
	Auth     *AuthHandler
	Settings *SettingsHandler
	Contact  *ContactHandler
	Branding *BrandingHandler
	Admin    *AdminHandler
}

// NewRouter creates and configures a new chi router. Every /api route passes
// through the session loader and the Casbin authorizer; public access is a
// policy grant to the anonymous role, not an unguarded route.
func NewRouter(h Handlers, sm session.Manager, authzMiddleware func(http.Handler) http.Handler, wrap func(appmw.AppHandler) http.Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The React frontends run on their own origins and send the session
	// cookie cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(sm.LoadAndSave)
		r.Use(authzMiddleware)

		// Auth gate
		r.Method(http.MethodPost, "/login", wrap(h.Auth.loginHandler))
		r.Method(http.MethodPost, "/logout", wrap(h.Auth.logoutHandler))
		r.Method(http.MethodGet, "/user", wrap(h.Auth.userHandler))

		// Content resolution and management
		r.Method(http.MethodGet, "/content/{pageId}", wrap(h.Content.getHandler))
		r.Method(http.MethodPut, "/content/{pageId}", wrap(h.Content.updateHandler))
		r.Method(http.MethodDelete, "/content/{pageId}", wrap(h.Content.deleteHandler))
		r.Method(http.MethodPost, "/content/{pageId}/sites", wrap(h.Content.associateHandler))
		r.Method(http.MethodDelete, "/content/{pageId}/sites/{siteCode}", wrap(h.Content.dissociateHandler))

		// Jobs and applications
		r.Method(http.MethodGet, "/jobs", wrap(h.Job.listHandler))
		r.Method(http.MethodPost, "/jobs", wrap(h.Job.createHandler))
		r.Method(http.MethodGet, "/jobs/featured", wrap(h.Job.featuredHandler))
		r.Method(http.MethodPost, "/jobs/apply", wrap(h.Job.applyHandler))
		r.Method(http.MethodGet, "/jobs/applications", wrap(h.Job.applicationsHandler))
		r.Method(http.MethodPut, "/jobs/applications/{id}/status", wrap(h.Job.applicationStatusHandler))
		r.Method(http.MethodGet, "/jobs/{id}", wrap(h.Job.getHandler))
		r.Method(http.MethodPut, "/jobs/{id}", wrap(h.Job.updateHandler))
		r.Method(http.MethodDelete, "/jobs/{id}", wrap(h.Job.deleteHandler))

		// News
		r.Method(http.MethodGet, "/news", wrap(h.News.listHandler))
		r.Method(http.MethodPost, "/news", wrap(h.News.createHandler))
		r.Method(http.MethodGet, "/news/latest", wrap(h.News.latestHandler))
		r.Method(http.MethodGet, "/news/{id}", wrap(h.News.getHandler))
		r.Method(http.MethodPut, "/news/{id}", wrap(h.News.updateHandler))
		r.Method(http.MethodDelete, "/news/{id}", wrap(h.News.deleteHandler))

		// Brand configuration
		r.Method(http.MethodGet, "/sites", wrap(h.Site.listHandler))
		r.Method(http.MethodGet, "/sites/{code}", wrap(h.Site.getHandler))
		r.Method(http.MethodPut, "/sites/{code}", wrap(h.Site.updateHandler))

		// Contact form intake
		r.Method(http.MethodPost, "/contact", wrap(h.Contact.submitHandler))

		// Branding file registry
		r.Method(http.MethodGet, "/branding/files", wrap(h.Branding.listHandler))
		r.Method(http.MethodPost, "/branding/files", wrap(h.Branding.createHandler))
		r.Method(http.MethodPut, "/branding/files/{id}", wrap(h.Branding.updateHandler))
		r.Method(http.MethodDelete, "/branding/files/{id}", wrap(h.Branding.deleteHandler))

		// Admin area
		r.Method(http.MethodGet, "/admin/contact-info", wrap(h.Settings.contactInfoHandler))
		r.Method(http.MethodPut, "/admin/contact-info", wrap(h.Settings.updateContactInfoHandler))
		r.Method(http.MethodGet, "/admin/settings", wrap(h.Settings.listHandler))
		r.Method(http.MethodPost, "/admin/settings", wrap(h.Settings.upsertHandler))
		r.Method(http.MethodPost, "/admin/settings/translate", wrap(h.Settings.translateHandler))
		r.Method(http.MethodGet, "/admin/stats", wrap(h.Admin.statsHandler))
	})

	return r
}
