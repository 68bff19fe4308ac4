package server

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/forkful/saucier/internal/auth"
	"github.com/forkful/saucier/internal/config"
	"github.com/forkful/saucier/internal/orchestrator"
	"github.com/forkful/saucier/internal/recipe"
	"github.com/forkful/saucier/internal/server/middleware"
	"github.com/forkful/saucier/internal/server/validator"
	"github.com/forkful/saucier/internal/storage"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Deps carries the services the HTTP layer exposes.
type Deps struct {
	Auth         *auth.Service
	Tokens       *auth.TokenProvider
	Recipes      *recipe.Service
	Orchestrator *orchestrator.Orchestrator
	Exports      *storage.Service
	Metrics      http.Handler
}

type Server struct {
	router *gin.Engine
	config *config.Config
	logger *zap.Logger
	deps   Deps
}

func New(cfg *config.Config, logger *zap.Logger, deps Deps) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	validator.Init()

	engine := gin.New()
	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(middleware.Logger(logger))
	engine.Use(otelgin.Middleware("saucier"))

	s := &Server{
		router: engine,
		config: cfg,
		logger: logger,
		deps:   deps,
	}

	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
