package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Every /api route resolves its owner from the API token
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	// Serve synthesized audio
	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	health := NewHealthController(cfg.Database, cfg.TaggerModel, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")

	translations := NewTranslationsController(cfg.Assembler, cfg.Ledger, cfg.Renderer, cfg.Log)
	api.POST("/translations", translations.CreateTranslation)
	api.GET("/translations", translations.ListTranslations)
	api.GET("/translations/:id", translations.GetTranslation)
	api.DELETE("/translations/:id", translations.DeleteTranslation)

	practice := NewPracticeController(cfg.Practice, cfg.Log)
	api.POST("/practice-sessions", practice.StartSession)
	api.GET("/practice-sessions", practice.ListSessions)
	api.GET("/practice-sessions/:id", practice.GetSession)
	api.PATCH("/practice-sessions/:id", practice.FinishSession)
	api.PATCH("/practice-sessions/questions/:id", practice.GradeAnswer)

	readingSessions := NewReadingSessionsController(cfg.ReadingSessions, cfg.Log)
	api.POST("/reading-sessions", readingSessions.CreateReadingSession)
	api.GET("/reading-sessions", readingSessions.ListReadingSessions)

	dashboard := NewDashboardController(cfg.Dashboard, cfg.Log)
	api.GET("/dashboard", dashboard.GetDashboard)

	audit := NewAuditController(cfg.AuditEvents, cfg.Log)
	api.GET("/audit-events", audit.GetAuditEvents)

	return router
}
