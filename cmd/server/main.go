package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-sites-app/internal/auth"
	"go-sites-app/internal/config"
	"go-sites-app/internal/data"
	"go-sites-app/internal/handler"
	"go-sites-app/internal/logger"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"
	"go-sites-app/internal/translate"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/casbin/casbin/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, nil)

	// --- Pre-flight Checks ---
	if cfg.Session.SecretKey == "" || cfg.Session.SecretKey == "CHANGE_ME_IN_PRODUCTION_SECRET!!" {
		log.Fatal(errors.New("session secret key not set"), "Please set a secure SITES_SESSION_SECRETKEY environment variable.")
	}

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	// --- Storage Backend Selection ---
	// The repositories behind the services are either SQL-backed (mysql or
	// sqlite) or an in-process store that needs no database at all.
	var (
		contentRepo  service.ContentRepository
		linkRepo     service.SiteLinkRepository
		jobRepo      service.JobRepository
		newsRepo     service.NewsRepository
		siteRepo     service.SiteRepository
		userRepo     service.UserRepository
		activityRepo service.ActivityRepository
		settingRepo  service.SettingRepository
		enforcer     *casbin.Enforcer
	)

	if cfg.Storage.Backend == "memory" {
		log.Warn("Using the in-memory storage backend; all data is lost on shutdown")
		store := data.NewMemoryStore()
		contentRepo = store.Contents()
		linkRepo = store.Links()
		jobRepo = store.Jobs()
		newsRepo = store.News()
		siteRepo = store.Sites()
		userRepo = store.Users()
		activityRepo = store.Activities()
		settingRepo = store.Settings()

		enforcer, err = auth.NewMemoryEnforcer("auth_model.conf")
		if err != nil {
			log.Fatal(err, "Failed to initialize enforcer")
		}
	} else {
		// --- Database Initialization and Migration ---
		log.Info("Applying database migrations...")
		if err := data.ApplyMigrations(cfg.DB.Driver, cfg.DB.DSN, "migrations"); err != nil {
			log.Fatal(err, "Failed to apply migrations")
		}
		log.Info("Migrations applied successfully.")

		log.Info("Connecting to the database...")
		db, err := data.NewDB(cfg.DB.Driver, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err, "Failed to connect to database")
		}
		defer db.Close()
		log.Info("Database connection successful.")

		if cfg.DB.Driver == "mysql" {
			sessionManager.Store = mysqlstore.New(db.DB)
		} else {
			sessionManager.Store = sqlite3store.New(db.DB)
		}

		contentRepo = data.NewContentRepository(db)
		linkRepo = data.NewSiteLinkRepository(db)
		jobRepo = data.NewJobRepository(db)
		newsRepo = data.NewNewsRepository(db)
		siteRepo = data.NewSiteRepository(db)
		userRepo = data.NewUserRepository(db)
		activityRepo = data.NewActivityRepository(db)
		settingRepo = data.NewSettingRepository(db)

		enforcer, err = auth.NewEnforcer(cfg.DB.Driver, cfg.DB.DSN, "auth_model.conf")
		if err != nil {
			log.Fatal(err, "Failed to initialize enforcer")
		}
	}

	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Auth components initialized and policies seeded.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	activityService := service.NewActivityService(activityRepo, log)
	contentService := service.NewContentService(contentRepo, linkRepo, activityService)
	jobService := service.NewJobService(jobRepo, linkRepo, activityService)
	newsService := service.NewNewsService(newsRepo, linkRepo, activityService)
	siteService := service.NewSiteService(siteRepo, activityService)
	settingService := service.NewSettingService(settingRepo, translate.New(cfg.Translator), activityService)
	authService := service.NewAuthService(userRepo, log)
	brandingService := service.NewBrandingService(activityService)

	if err := authService.EnsureBootstrapAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal(err, "Failed to ensure bootstrap admin account")
	}

	handlers := handler.Handlers{
		Content:  handler.NewContentHandler(contentService, log),
		Job:      handler.NewJobHandler(jobService, log),
		News:     handler.NewNewsHandler(newsService, log),
		Site:     handler.NewSiteHandler(siteService, log),
		Auth:     handler.NewAuthHandler(authService, sessionManager, log),
		Settings: handler.NewSettingsHandler(settingService, log),
		Contact:  handler.NewContactHandler(activityService, cfg.Contact.NotifyEmail, log),
		Branding: handler.NewBrandingHandler(brandingService, log),
		Admin:    handler.NewAdminHandler(contentService, jobService, newsService, activityService, log),
	}

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)
	errorMiddleware := middleware.Error(log)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(handlers, sessionManager, authzMiddleware, errorMiddleware, cfg.Server.AllowedOrigins)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "Could not start HTTP server")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
