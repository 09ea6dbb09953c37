package http

import (
	"points_platform/internal/config"
	"points_platform/internal/http/handlers"
	"points_platform/internal/http/middleware"
	"points_platform/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	hub := ws.NewHub()
	go hub.Run()

	h := handlers.NewHandler(db, cfg, hub)
	healthHandler := handlers.NewHealthHandler(db, hub, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Event stream
	r.GET("/ws", h.WS())

	// Per-IP limiter: redis-backed when configured, in-memory otherwise
	rateLimit := middleware.SimpleRateLimit(cfg.APIRateLimit, cfg.APIRateWindow)
	if cfg.RedisAddr != "" {
		rateLimit = middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow)
	}

	v1 := r.Group("/api/v1")
	v1.Use(rateLimit)
	registerAPIRoutes(v1, h, cfg)

	// Legacy /api routes kept for older clients
	api := r.Group("/api")
	api.Use(rateLimit)
	registerAPIRoutes(api, h, cfg)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	if cfg.DevMode {
		api.POST("/auth/dev", h.DevAuth)
	}

	api.GET("/me", middleware.JWT(), h.Me)

	// Chat pipeline
	chatRL := middleware.ChatRateLimit(cfg.ChatRateLimit, cfg.ChatRateWindow)
	api.GET("/chat", h.ListMessages)
	api.POST("/chat", middleware.JWT(), chatRL, h.PostMessage)
	api.POST("/chat/manage", middleware.JWT(), h.ManageChat)

	// Rain engine
	api.GET("/chat/rain", middleware.OptionalJWT(), h.RainStatus)
	api.POST("/chat/rain/start", middleware.JWT(), h.RainStart)
	api.POST("/chat/rain/claim", middleware.JWT(), h.RainClaim)

	// Social bonus
	api.GET("/socials/status", middleware.JWT(), h.SocialBonusStatus)
	api.POST("/socials/claim", middleware.JWT(), h.ClaimSocialBonus)
}
