package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kivly/backend/config"
	"github.com/kivly/backend/internal/api"
	"github.com/kivly/backend/internal/middleware"
	"github.com/kivly/backend/internal/service"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server wires the HTTP surface: one generation endpoint plus health.
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New builds the engine with CORS, logging, recovery and optional rate
// limiting, then registers the handlers. redisClient may be nil when the
// rate limiter is not configured.
func New(cfg *config.Config, recipes service.IRecipeService, redisClient *redis.Client, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Accept", "Origin", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}))

	if cfg.RateLimitEnabled && redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    cfg.RateLimitWindow,
			Limit:     cfg.RateLimitRequests,
			KeyPrefix: "ratelimit:generate",
		})
		router.Use(limiter.Middleware())
	}

	api.NewHealthHandler(Version).RegisterRoutes(router)
	api.NewGenerateHandler(recipes, logger).RegisterRoutes(router)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:         net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 2 * cfg.GroqTimeout,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving requests until Shutdown or failure.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
