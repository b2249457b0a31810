package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/internal/config"
	"immobiliare-gpt-backend/internal/middleware"
)

const sessionCookie = "immobiliare_session"

type Router struct {
	Health  *HealthHandler
	Ads     *AdsHandler
	Contact *ContactHandler
	AI      *AIHandler
	Auth    *AuthHandler
	Plans   *PlansHandler
}

// Engine registers every route on a new gin engine.
func (r *Router) Engine(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())
	engine.MaxMultipartMemory = maxFormMemory

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/health", r.Health.Health)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/auth",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
	})
	auth := engine.Group("/auth")
	auth.Use(sessions.Sessions(sessionCookie, store))
	auth.GET("/oauth/:provider", r.Auth.OAuthStart)
	auth.GET("/callback", r.Auth.Callback)

	public := engine.Group("/api/v1")
	public.GET("/plans", r.Plans.List)
	public.POST("/contact", r.Contact.Submit)

	api := engine.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.GET("/me", r.Auth.Me)
	api.POST("/auth/logout", r.Auth.Logout)

	api.POST("/ads", r.Ads.Submit)
	api.GET("/ads", r.Ads.List)
	api.GET("/ads/:ad_id", r.Ads.Get)
	api.GET("/ads/:ad_id/download", r.Ads.Download)

	api.POST("/ai/chat", r.AI.Chat)
	api.POST("/ai/optimize-description", r.AI.OptimizeDescription)
	api.POST("/ai/enhance-image", r.AI.EnhanceImage)

	return engine
}
