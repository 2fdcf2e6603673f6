package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/webdeskos/backend/internal/api/http"
	"github.com/webdeskos/backend/internal/api/middleware"
	"github.com/webdeskos/backend/internal/api/ws"
	"github.com/webdeskos/backend/internal/cache"
	"github.com/webdeskos/backend/internal/infrastructure/config"
	"github.com/webdeskos/backend/internal/infrastructure/logging"
	"github.com/webdeskos/backend/internal/infrastructure/monitoring"
	"github.com/webdeskos/backend/internal/infrastructure/tracing"
	"github.com/webdeskos/backend/internal/service"
	"github.com/webdeskos/backend/internal/shared/types"
	"github.com/webdeskos/backend/internal/storage/sqlite"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	store   *sqlite.Store
	cache   *cache.Memory
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing WebDesk Server",
		zap.String("port", cfg.Server.Port),
		zap.String("db_path", cfg.Database.Path),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	logger.Info("Performance monitoring initialized")

	// Initialize request tracing
	tracer := tracing.New("webdesk", logger.Logger)

	// Open storage
	store, err := sqlite.Open(cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	// Snapshot cache (optional)
	var snapCache *cache.Memory
	var cacheIface cache.Cache
	if cfg.Cache.Enabled {
		snapCache = cache.NewMemory(cfg.Cache.TTL)
		cacheIface = snapCache
		logger.Info("Snapshot cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	// Desktop service
	desktopService := service.NewDesktop(store, cacheIface, logger).WithMetrics(metrics)

	viewport := types.Viewport{
		Width:  cfg.Desktop.ViewportWidth,
		Height: cfg.Desktop.ViewportHeight,
	}

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.Identity())
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handlers
	handlers := http.NewHandlers(desktopService)
	wsHandler := ws.NewHandler(desktopService, viewport, cfg.Desktop.TaskbarHeight, logger).WithMetrics(metrics)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Desktop state
	router.GET("/desktop/state", handlers.GetState)
	router.PUT("/desktop/state", handlers.SaveState)
	router.POST("/desktop/reset", handlers.ResetDesktop)

	// Windows
	router.GET("/desktop/windows", handlers.ListWindows)
	router.POST("/desktop/windows", handlers.SaveWindow)
	router.POST("/desktop/windows/bulk", handlers.SaveWindowsBulk)
	router.POST("/desktop/windows/:id/focus", handlers.FocusWindow)
	router.DELETE("/desktop/windows/:id", handlers.DeleteWindow)
	router.DELETE("/desktop/windows", handlers.DeleteAllWindows)

	// WebSocket live session
	router.GET("/desktop/stream", wsHandler.HandleConnection)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		store:   store,
		cache:   snapCache,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if s.cache != nil {
		s.cache.Stop()
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close storage", zap.Error(err))
		return err
	}
	s.logger.Info("Closed storage")

	// Sync logger before exit
	s.logger.Sync()

	return nil
}
