// Package api wires together all HTTP routes for the CMS backend.
//
// Route grouping philosophy:
//   - /api/public/ routes are unauthenticated reads of published content, plus
//     the contact form. They carry the general rate limit (the contact form a
//     stricter one) so the public site can be served without credentials.
//   - /api/auth/ holds login and session endpoints.
//   - /api/admin/ routes always require a valid session and a role gate.
//     Every mutating admin route is wrapped in the audit middleware, which
//     records an activity log entry after a successful response.
//   - /media/ serves uploaded files when the local storage backend has
//     serve_directly enabled.
package api

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/bondhu-gosthi/cms-backend/internal/api/admin"
	"github.com/bondhu-gosthi/cms-backend/internal/api/content"
	"github.com/bondhu-gosthi/cms-backend/internal/audit"
	"github.com/bondhu-gosthi/cms-backend/internal/config"
	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/jobs"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
	"github.com/bondhu-gosthi/cms-backend/internal/retention"
	"github.com/bondhu-gosthi/cms-backend/internal/storage"

	// Import storage backends to register them
	_ "github.com/bondhu-gosthi/cms-backend/internal/storage/azure"
	_ "github.com/bondhu-gosthi/cms-backend/internal/storage/gcs"
	_ "github.com/bondhu-gosthi/cms-backend/internal/storage/local"
	_ "github.com/bondhu-gosthi/cms-backend/internal/storage/s3"
)

// BackgroundServices holds references to background jobs and resources that must
// be stopped during graceful shutdown. The caller (cmd/server) is responsible for
// calling Shutdown() when the process receives a termination signal.
type BackgroundServices struct {
	retentionSweeper *jobs.RetentionSweeper
	rateLimiters     []*middleware.RateLimiter
	redisClient      *redis.Client
}

// Shutdown stops all background goroutines. It should be called after the HTTP
// server has been shut down so that in-flight requests are drained first.
func (bg *BackgroundServices) Shutdown() {
	slog.Info("stopping background services")
	if bg.retentionSweeper != nil {
		bg.retentionSweeper.Stop()
	}
	for _, rl := range bg.rateLimiters {
		rl.Stop()
	}
	if bg.redisClient != nil {
		if err := bg.redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}
	slog.Info("all background services stopped")
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, db *sqlx.DB, policy retention.Policy) (*gin.Engine, *BackgroundServices) {
	router := gin.New()

	// Initialize storage backend
	storageBackend, err := storage.NewStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}
	slog.Info("initialized storage backend", "backend", cfg.Storage.DefaultBackend)

	// Create the media bucket, container, or directory up front so the first
	// upload does not pay for it. Non-fatal: the bucket may already exist with
	// credentials that cannot create one.
	if err := storageBackend.EnsureBucket(context.Background()); err != nil {
		slog.Warn("could not ensure media bucket", "error", err)
	}

	// Initialize repositories
	adminRepo := repositories.NewAdminRepository(db)
	logRepo := repositories.NewActivityLogRepository(db, policy)
	eventRepo := repositories.NewEventRepository(db)
	sportRepo := repositories.NewSportRepository(db)
	socialWorkRepo := repositories.NewSocialWorkRepository(db)
	galleryRepo := repositories.NewGalleryRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	newsRepo := repositories.NewNewsRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	pageRepo := repositories.NewPageRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	testimonialRepo := repositories.NewTestimonialRepository(db)
	socialPostRepo := repositories.NewSocialPostRepository(db)
	pressMentionRepo := repositories.NewPressMentionRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db)

	recorder := audit.NewRecorder(logRepo)

	// Periodic retention sweep; the startup sweep runs in cmd/server before
	// the listener comes up.
	retentionSweeper := jobs.NewRetentionSweeper(logRepo, cfg.Activity.SweepInterval)
	go retentionSweeper.Start(context.Background())

	bg := &BackgroundServices{retentionSweeper: retentionSweeper}

	// Rate limiting: in-process token buckets by default; when a Redis URL is
	// configured, limits are enforced through Redis so all replicas share one
	// budget.
	var generalRL, authRL, uploadRL, contactRL gin.HandlerFunc
	if cfg.Security.RateLimiting.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Security.RateLimiting.RedisURL)
		if err != nil {
			log.Fatalf("Invalid rate limiting redis_url: %v", err)
		}
		client := redis.NewClient(opts)
		bg.redisClient = client
		generalRL = middleware.RedisRateLimitMiddleware(client, middleware.DefaultRateLimitConfig())
		authRL = middleware.RedisRateLimitMiddleware(client, middleware.AuthRateLimitConfig())
		uploadRL = middleware.RedisRateLimitMiddleware(client, middleware.UploadRateLimitConfig())
		contactRL = middleware.RedisRateLimitMiddleware(client, middleware.ContactFormRateLimitConfig())
		slog.Info("rate limiting enforced through redis")
	} else {
		generalLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig())
		authLimiter := middleware.NewRateLimiter(middleware.AuthRateLimitConfig())
		uploadLimiter := middleware.NewRateLimiter(middleware.UploadRateLimitConfig())
		contactLimiter := middleware.NewRateLimiter(middleware.ContactFormRateLimitConfig())
		bg.rateLimiters = []*middleware.RateLimiter{generalLimiter, authLimiter, uploadLimiter, contactLimiter}
		generalRL = middleware.RateLimitMiddleware(generalLimiter)
		authRL = middleware.RateLimitMiddleware(authLimiter)
		uploadRL = middleware.RateLimitMiddleware(uploadLimiter)
		contactRL = middleware.RateLimitMiddleware(contactLimiter)
	}

	// Initialize handlers
	authHandlers := admin.NewAuthHandlers(cfg, adminRepo, recorder)
	adminHandlers := admin.NewAdminHandlers(adminRepo)
	activityLogHandlers := admin.NewActivityLogHandlers(logRepo)
	dashboardHandlers := admin.NewDashboardHandlers(dashboardRepo)
	uploadHandlers := admin.NewUploadHandlers(cfg, storageBackend)

	eventHandlers := content.NewEventHandlers(eventRepo)
	sportHandlers := content.NewSportHandlers(sportRepo)
	socialWorkHandlers := content.NewSocialWorkHandlers(socialWorkRepo)
	galleryHandlers := content.NewGalleryHandlers(galleryRepo)
	memberHandlers := content.NewMemberHandlers(memberRepo)
	newsHandlers := content.NewNewsHandlers(newsRepo)
	contactHandlers := content.NewContactHandlers(contactRepo)
	pageHandlers := content.NewPageHandlers(pageRepo)
	settingsHandlers := content.NewSettingsHandlers(settingsRepo)
	testimonialHandlers := content.NewTestimonialHandlers(testimonialRepo)
	socialPostHandlers := content.NewSocialPostHandlers(socialPostRepo)
	pressMentionHandlers := content.NewPressMentionHandlers(pressMentionRepo)
	statsHandlers := content.NewStatsHandlers(dashboardRepo, socialWorkRepo)

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(LoggerMiddleware(cfg))
	router.Use(CORSMiddleware(cfg))
	router.Use(middleware.SecurityHeadersMiddleware(middleware.APISecurityHeadersConfig()))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// Readiness check endpoint (includes storage backend probe)
	router.GET("/ready", readinessHandler(db, storageBackend))

	// API version
	router.GET("/version", versionHandler())

	// File serving for local storage with serve_directly enabled
	router.GET("/media/*filepath", serveMediaHandler(storageBackend))

	// Public content endpoints
	public := router.Group("/api/public")
	public.Use(generalRL)
	{
		public.GET("/stats", statsHandlers.PublicStatsHandler())

		public.GET("/events", eventHandlers.ListHandler(true))
		public.GET("/events/upcoming", eventHandlers.UpcomingHandler())
		public.GET("/events/:id", eventHandlers.GetHandler(true))

		public.GET("/sports", sportHandlers.ListSportsHandler(true))
		public.GET("/sports/:id", sportHandlers.GetSportHandler(true))
		public.GET("/tournaments", sportHandlers.ListTournamentsHandler())
		public.GET("/tournaments/:id", sportHandlers.GetTournamentHandler())

		public.GET("/social-works", socialWorkHandlers.ListHandler(true))
		public.GET("/social-works/:id", socialWorkHandlers.GetHandler(true))

		public.GET("/galleries", galleryHandlers.ListHandler(true))
		public.GET("/galleries/:id", galleryHandlers.GetHandler(true))
		public.GET("/slider-images", galleryHandlers.ListSlidesHandler(true))

		public.GET("/members", memberHandlers.ListHandler(true))
		public.GET("/members/:id", memberHandlers.GetHandler(true))

		public.GET("/news", newsHandlers.ListHandler(true))
		public.GET("/news/:id", newsHandlers.GetHandler(true))

		public.GET("/pages", pageHandlers.ListHandler(true))
		public.GET("/pages/:slug", pageHandlers.GetBySlugHandler())

		public.GET("/settings", settingsHandlers.GetHandler())
		public.GET("/testimonials", testimonialHandlers.ListHandler(true))
		public.GET("/social-posts", socialPostHandlers.ListHandler(true))
		public.GET("/press-mentions", pressMentionHandlers.ListHandler(true))

		public.POST("/contact", contactRL, contactHandlers.SubmitHandler())
	}

	// Authentication endpoints
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", authRL, authHandlers.LoginHandler())

		session := authGroup.Group("")
		session.Use(middleware.AuthMiddleware(adminRepo))
		{
			session.GET("/me", authHandlers.MeHandler())
			session.POST("/logout", authHandlers.LogoutHandler())
		}
	}

	// Admin endpoints: authenticated, role-gated, mutations audited
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(generalRL)
	adminGroup.Use(middleware.AuthMiddleware(adminRepo))
	adminGroup.Use(middleware.RequireRole(models.RoleSuperAdmin, models.RoleEditor))
	{
		adminGroup.GET("/dashboard/stats", dashboardHandlers.GetHandler())
		adminGroup.GET("/dashboard/health", healthCheckHandler(db))

		adminGroup.POST("/upload", uploadRL,
			middleware.Audit(recorder, models.ActionCreate, models.ModuleGallery),
			uploadHandlers.UploadHandler)
		adminGroup.GET("/media", uploadHandlers.ListHandler)
		adminGroup.DELETE("/media/*filepath",
			middleware.Audit(recorder, models.ActionDelete, models.ModuleGallery),
			uploadHandlers.DeleteHandler)

		registerContentRoutes(adminGroup, recorder,
			eventHandlers, sportHandlers, socialWorkHandlers, galleryHandlers,
			memberHandlers, newsHandlers, contactHandlers, pageHandlers,
			settingsHandlers, testimonialHandlers, socialPostHandlers, pressMentionHandlers)

		// Admin account management and the audit trail are super admin only
		super := adminGroup.Group("")
		super.Use(middleware.RequireSuperAdmin())
		{
			super.GET("/admins", adminHandlers.ListHandler())
			super.GET("/admins/:id", adminHandlers.GetHandler())
			super.POST("/admins",
				middleware.Audit(recorder, models.ActionCreate, models.ModuleAuth),
				adminHandlers.CreateHandler())
			super.PUT("/admins/:id",
				middleware.Audit(recorder, models.ActionUpdate, models.ModuleAuth),
				adminHandlers.UpdateHandler())
			super.PATCH("/admins/:id/password",
				middleware.Audit(recorder, models.ActionUpdate, models.ModuleAuth),
				adminHandlers.UpdatePasswordHandler())
			super.DELETE("/admins/:id",
				middleware.Audit(recorder, models.ActionDelete, models.ModuleAuth),
				adminHandlers.DeleteHandler())

			super.GET("/activity-logs", activityLogHandlers.ListHandler())
			super.GET("/activity-logs/stats", activityLogHandlers.StatsHandler())
			super.GET("/activity-logs/:id", activityLogHandlers.GetHandler())
		}
	}

	return router, bg
}

// registerContentRoutes wires the admin CRUD surface for every content area.
// Each mutating route carries the audit middleware with its module name so the
// activity trail attributes changes to the right content area.
func registerContentRoutes(
	g *gin.RouterGroup,
	recorder *audit.Recorder,
	events *content.EventHandlers,
	sports *content.SportHandlers,
	socialWorks *content.SocialWorkHandlers,
	galleries *content.GalleryHandlers,
	members *content.MemberHandlers,
	news *content.NewsHandlers,
	contacts *content.ContactHandlers,
	pages *content.PageHandlers,
	settings *content.SettingsHandlers,
	testimonials *content.TestimonialHandlers,
	socialPosts *content.SocialPostHandlers,
	pressMentions *content.PressMentionHandlers,
) {
	audited := func(action, module string) gin.HandlerFunc {
		return middleware.Audit(recorder, action, module)
	}

	g.GET("/events", events.ListHandler(false))
	g.GET("/events/:id", events.GetHandler(false))
	g.POST("/events", audited(models.ActionCreate, models.ModuleEvents), events.CreateHandler())
	g.PUT("/events/:id", audited(models.ActionUpdate, models.ModuleEvents), events.UpdateHandler())
	g.DELETE("/events/:id", audited(models.ActionDelete, models.ModuleEvents), events.DeleteHandler())

	g.GET("/sports", sports.ListSportsHandler(false))
	g.GET("/sports/:id", sports.GetSportHandler(false))
	g.POST("/sports", audited(models.ActionCreate, models.ModuleSports), sports.CreateSportHandler())
	g.PUT("/sports/:id", audited(models.ActionUpdate, models.ModuleSports), sports.UpdateSportHandler())
	g.DELETE("/sports/:id", audited(models.ActionDelete, models.ModuleSports), sports.DeleteSportHandler())

	g.GET("/tournaments", sports.ListTournamentsHandler())
	g.GET("/tournaments/:id", sports.GetTournamentHandler())
	g.POST("/tournaments", audited(models.ActionCreate, models.ModuleSports), sports.CreateTournamentHandler())
	g.PUT("/tournaments/:id", audited(models.ActionUpdate, models.ModuleSports), sports.UpdateTournamentHandler())
	g.DELETE("/tournaments/:id", audited(models.ActionDelete, models.ModuleSports), sports.DeleteTournamentHandler())

	g.GET("/social-works", socialWorks.ListHandler(false))
	g.GET("/social-works/:id", socialWorks.GetHandler(false))
	g.POST("/social-works", audited(models.ActionCreate, models.ModuleSocialWork), socialWorks.CreateHandler())
	g.PUT("/social-works/:id", audited(models.ActionUpdate, models.ModuleSocialWork), socialWorks.UpdateHandler())
	g.DELETE("/social-works/:id", audited(models.ActionDelete, models.ModuleSocialWork), socialWorks.DeleteHandler())

	g.GET("/galleries", galleries.ListHandler(false))
	g.GET("/galleries/:id", galleries.GetHandler(false))
	g.POST("/galleries", audited(models.ActionCreate, models.ModuleGallery), galleries.CreateHandler())
	g.PUT("/galleries/:id", audited(models.ActionUpdate, models.ModuleGallery), galleries.UpdateHandler())
	g.DELETE("/galleries/:id", audited(models.ActionDelete, models.ModuleGallery), galleries.DeleteHandler())

	g.GET("/slider-images", galleries.ListSlidesHandler(false))
	g.POST("/slider-images", audited(models.ActionCreate, models.ModuleSliderImages), galleries.CreateSlideHandler())
	g.PUT("/slider-images/:id", audited(models.ActionUpdate, models.ModuleSliderImages), galleries.UpdateSlideHandler())
	g.DELETE("/slider-images/:id", audited(models.ActionDelete, models.ModuleSliderImages), galleries.DeleteSlideHandler())

	g.GET("/members", members.ListHandler(false))
	g.GET("/members/:id", members.GetHandler(false))
	g.POST("/members", audited(models.ActionCreate, models.ModuleMembers), members.CreateHandler())
	g.PUT("/members/:id", audited(models.ActionUpdate, models.ModuleMembers), members.UpdateHandler())
	g.DELETE("/members/:id", audited(models.ActionDelete, models.ModuleMembers), members.DeleteHandler())

	g.GET("/news", news.ListHandler(false))
	g.GET("/news/:id", news.GetHandler(false))
	g.POST("/news", audited(models.ActionCreate, models.ModuleNews), news.CreateHandler())
	g.PUT("/news/:id", audited(models.ActionUpdate, models.ModuleNews), news.UpdateHandler())
	g.DELETE("/news/:id", audited(models.ActionDelete, models.ModuleNews), news.DeleteHandler())

	g.GET("/contacts", contacts.ListHandler())
	g.GET("/contacts/:id", contacts.GetHandler())
	g.PATCH("/contacts/:id/status", audited(models.ActionUpdate, models.ModuleContact), contacts.UpdateStatusHandler())
	g.DELETE("/contacts/:id", audited(models.ActionDelete, models.ModuleContact), contacts.DeleteHandler())

	g.GET("/pages", pages.ListHandler(false))
	g.GET("/pages/:id", pages.GetHandler())
	g.POST("/pages", audited(models.ActionCreate, models.ModulePages), pages.CreateHandler())
	g.PUT("/pages/:id", audited(models.ActionUpdate, models.ModulePages), pages.UpdateHandler())
	g.DELETE("/pages/:id", audited(models.ActionDelete, models.ModulePages), pages.DeleteHandler())

	g.GET("/settings", settings.GetHandler())
	g.PUT("/settings", audited(models.ActionUpdate, models.ModuleSettings), settings.UpdateHandler())
	g.PATCH("/settings/social-media", audited(models.ActionUpdate, models.ModuleSettings), settings.UpdateSocialMediaHandler())
	g.PATCH("/settings/seo", audited(models.ActionUpdate, models.ModuleSettings), settings.UpdateSEOHandler())

	g.GET("/testimonials", testimonials.ListHandler(false))
	g.POST("/testimonials", audited(models.ActionCreate, models.ModuleTestimonials), testimonials.CreateHandler())
	g.PUT("/testimonials/:id", audited(models.ActionUpdate, models.ModuleTestimonials), testimonials.UpdateHandler())
	g.DELETE("/testimonials/:id", audited(models.ActionDelete, models.ModuleTestimonials), testimonials.DeleteHandler())

	g.GET("/social-posts", socialPosts.ListHandler(false))
	g.POST("/social-posts", audited(models.ActionCreate, models.ModuleSocialPosts), socialPosts.CreateHandler())
	g.PUT("/social-posts/:id", audited(models.ActionUpdate, models.ModuleSocialPosts), socialPosts.UpdateHandler())
	g.DELETE("/social-posts/:id", audited(models.ActionDelete, models.ModuleSocialPosts), socialPosts.DeleteHandler())

	g.GET("/press-mentions", pressMentions.ListHandler(false))
	g.POST("/press-mentions", audited(models.ActionCreate, models.ModulePressMentions), pressMentions.CreateHandler())
	g.PUT("/press-mentions/:id", audited(models.ActionUpdate, models.ModulePressMentions), pressMentions.UpdateHandler())
	g.DELETE("/press-mentions/:id", audited(models.ActionDelete, models.ModulePressMentions), pressMentions.DeleteHandler())
}

// @Summary      Health check
// @Description  Returns the health status of the service, including database connectivity.
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status: healthy, time: RFC3339 timestamp"
// @Failure      503  {object}  map[string]interface{}  "status: unhealthy, error: database connection failed"
// @Router       /health [get]
// healthCheckHandler returns the health status of the service
func healthCheckHandler(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// readinessHandler returns the readiness status of the service.
// Unlike the liveness probe (/health), this also checks the storage backend so
// that a Kubernetes readiness gate fails when uploads would error.
func readinessHandler(db *sqlx.DB, storageBackend storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := gin.H{}

		if err := db.Ping(); err != nil {
			checks["database"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"ready":  false,
				"checks": checks,
				"error":  "database not ready",
			})
			return
		}
		checks["database"] = "healthy"

		// Probe the storage backend with a known-absent sentinel path.
		// Exists() exercises authentication and network connectivity without
		// creating any state.
		if _, err := storageBackend.Exists(c.Request.Context(), ".readiness-probe"); err != nil {
			checks["storage"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"ready":  false,
				"checks": checks,
				"error":  "storage backend not ready",
			})
			return
		}
		checks["storage"] = "healthy"

		c.JSON(http.StatusOK, gin.H{
			"ready":  true,
			"checks": checks,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// versionHandler returns the API version
func versionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":     "0.1.0",
			"api_version": "v1",
		})
	}
}

// LoggerMiddleware provides structured request logging through slog. The output
// format (json or text) follows the handler configured in telemetry.SetupLogger.
func LoggerMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		slog.LogAttrs(
			c.Request.Context(),
			slog.LevelInfo,
			"http request",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.Int("status", c.Writer.Status()),
			slog.Int("size", c.Writer.Size()),
			slog.Duration("latency", latency),
			slog.String("ip", c.ClientIP()),
			slog.String("request_id", middleware.RequestID(c)),
			slog.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// CORSMiddleware handles CORS
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range cfg.Security.CORS.AllowedOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				allowed = true
				break
			}
		}

		if allowed {
			if origin == "" {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
			}
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With")
			c.Header("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
