package http

import (
	"time"

	"farm_webapp/internal/config"
	"farm_webapp/internal/http/handlers"
	"farm_webapp/internal/http/middleware"
	"farm_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	hub := ws.NewHub()
	h := handlers.NewHandler(db, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindow) * time.Second
	actionRateWindow := time.Duration(cfg.ActionRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, cfg, authRateWindow, actionRateWindow)

	// Legacy /api routes (backward compatibility)
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, cfg, authRateWindow, actionRateWindow)

	// WebSocket notifications (achievements, level-ups)
	r.GET("/ws", h.WS(hub))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config, authRateWindow, actionRateWindow time.Duration) {
	// Auth
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, authRateWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	// User profile
	api.GET("/me", middleware.JWT(), h.Me)

	// Game action rate limiter (per user, not per IP)
	actionRL := middleware.ActionRateLimit(cfg.ActionRateLimit, actionRateWindow)

	// Game actions
	api.GET("/game/resources", middleware.JWT(), h.Resources)
	api.POST("/game/collect", middleware.JWT(), actionRL, h.Collect)
	api.POST("/game/sell", middleware.JWT(), actionRL, h.Sell)
	api.POST("/game/sell-all", middleware.JWT(), actionRL, h.SellAll)
	api.POST("/game/upgrade", middleware.JWT(), actionRL, h.Upgrade)

	// Achievements
	api.GET("/achievements", h.ListAchievements)
	api.GET("/me/achievements", middleware.JWT(), h.MyAchievements)
	api.POST("/me/achievements/check", middleware.JWT(), h.CheckAchievements)

	// Leaderboard (global ranking + caller's rank)
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/leaderboard/rank", middleware.JWT(), h.GetMyRank)
}
