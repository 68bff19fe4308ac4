package server

import (
	"github.com/gin-gonic/gin"

	"github.com/forkful/saucier/internal/server/middleware"
	v1 "github.com/forkful/saucier/internal/server/v1"
)

func (s *Server) setupRoutes() {
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.ErrorHandler(s.logger))

	limiter := middleware.NewRateLimiter(
		s.config.RateLimit.RequestsPerSecond,
		s.config.RateLimit.Burst,
		s.logger,
	)
	s.router.Use(limiter.Middleware())

	healthHandler := v1.NewHealthHandler(s.deps.Orchestrator, Version)
	s.router.GET("/health", healthHandler.Health)

	if s.deps.Metrics != nil {
		s.router.GET("/metrics", func(c *gin.Context) {
			s.deps.Metrics.ServeHTTP(c.Writer, c.Request)
		})
	}

	api := s.router.Group("/v1")

	authHandler := v1.NewAuthHandler(s.deps.Auth)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(s.deps.Tokens))
	{
		recipeHandler := v1.NewRecipeHandler(s.deps.Recipes, s.deps.Exports)
		protected.POST("/recipes/generate", recipeHandler.Generate)
		protected.GET("/recipes", recipeHandler.List)
		protected.GET("/recipes/:id", recipeHandler.Get)
		protected.DELETE("/recipes/:id", recipeHandler.Delete)
		protected.POST("/recipes/:id/export", recipeHandler.Export)

		adminHandler := v1.NewAdminHandler(s.deps.Orchestrator)
		protected.GET("/admin/cache/stats", adminHandler.CacheStats)
		protected.POST("/admin/cache/cleanup", adminHandler.CleanupCache)
	}
}
