package auth

import (
	"fmt"
	"go-sites-app/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of authorization rules.
// It checks if each default policy exists before adding it, making the operation idempotent
// and safe to run on every application start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Roles chain anonymous -> editor -> admin. keyMatch2 compiles each
	// object pattern as an anchored regex, so the numeric class on single
	// job reads keeps /api/jobs/applications out of the anonymous grant.
	policies := [][]string{
		// Anonymous visitors get the public read surface plus the public
		// submission endpoints and the auth gate itself.
		{"anonymous", "/api/content/:pageId", "GET"},
		{"anonymous", "/api/jobs", "GET"},
		{"anonymous", "/api/jobs/featured", "GET"},
		{"anonymous", "/api/jobs/[0-9]+", "GET"},
		{"anonymous", "/api/jobs/apply", "POST"},
		{"anonymous", "/api/news", "GET"},
		{"anonymous", "/api/news/latest", "GET"},
		{"anonymous", "/api/news/:id", "GET"},
		{"anonymous", "/api/sites", "GET"},
		{"anonymous", "/api/sites/:code", "GET"},
		{"anonymous", "/api/contact", "POST"},
		{"anonymous", "/api/admin/contact-info", "GET"},
		{"anonymous", "/api/login", "POST"},
		{"anonymous", "/api/logout", "POST"},
		{"anonymous", "/api/user", "GET"},

		// Editors manage content, jobs, news, site configuration and the
		// branding file registry.
		{"editor", "/api/content/:pageId", "PUT"},
		{"editor", "/api/content/:pageId", "DELETE"},
		{"editor", "/api/content/:pageId/sites", "POST"},
		{"editor", "/api/content/:pageId/sites/:siteCode", "DELETE"},
		{"editor", "/api/jobs", "POST"},
		{"editor", "/api/jobs/:id", "PUT"},
		{"editor", "/api/jobs/:id", "DELETE"},
		{"editor", "/api/jobs/applications", "GET"},
		{"editor", "/api/jobs/applications/:id/status", "PUT"},
		{"editor", "/api/news", "POST"},
		{"editor", "/api/news/:id", "PUT"},
		{"editor", "/api/news/:id", "DELETE"},
		{"editor", "/api/sites/:code", "PUT"},
		{"editor", "/api/admin/contact-info", "PUT"},
		{"editor", "/api/branding/files", "GET"},
		{"editor", "/api/branding/files", "POST"},
		{"editor", "/api/branding/files/:id", "PUT"},
		{"editor", "/api/branding/files/:id", "DELETE"},
		{"editor", "/api/admin/stats", "GET"},

		// Settings management and translation are admin-only.
		{"admin", "/api/admin/settings", "GET"},
		{"admin", "/api/admin/settings", "POST"},
		{"admin", "/api/admin/settings/translate", "POST"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	roleLinks := [][2]string{
		{"editor", "anonymous"},
		{"admin", "editor"},
	}
	for _, link := range roleLinks {
		if has, _ := e.HasRoleForUser(link[0], link[1]); !has {
			if _, err := e.AddRoleForUser(link[0], link[1]); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add role %q -> %q", link[0], link[1]))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
