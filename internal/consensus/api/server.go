package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polyneurons/polyneurons-backend/internal/consensus"
	"github.com/polyneurons/polyneurons-backend/internal/consensus/api/handlers"
	"github.com/polyneurons/polyneurons-backend/internal/consensus/metrics"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
)

// Server represents the API server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     logging.Logger
}

// Config holds the server configuration
type Config struct {
	Port string
}

// Dependencies holds the server dependencies
type Dependencies struct {
	Logger    logging.Logger
	Engine    *consensus.Engine
	Collector *metrics.Collector
}

func NewServer(cfg Config, deps Dependencies) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(TraceMiddleware())
	router.Use(LoggerMiddleware(deps.Logger))
	router.Use(MetricsMiddleware())

	srv := &Server{
		router: router,
		logger: deps.Logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Port),
			Handler: router,
		},
	}

	srv.setupRoutes(deps)
	return srv
}

// Start starts the server
func (s *Server) Start() error {
	s.logger.Info("Starting API server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes(deps Dependencies) {
	statusHandler := handlers.NewStatusHandler(deps.Engine.RequiredConfirmations())
	validatorHandler := handlers.NewValidatorHandler(deps.Logger, deps.Engine)
	proofHandler := handlers.NewProofHandler(deps.Logger, deps.Engine)

	s.router.GET("/health", statusHandler.Health)
	if deps.Collector != nil {
		s.router.GET("/metrics", gin.WrapH(deps.Collector.Handler()))
	}

	api := s.router.Group("/api")
	{
		api.POST("/validators", validatorHandler.AddValidator)
		api.GET("/validators", validatorHandler.ListValidators)

		api.POST("/proofs", proofHandler.SubmitProof)
		api.GET("/proofs/verified", proofHandler.GetVerifiedProofs)
		api.GET("/proofs/:id", proofHandler.GetProof)
		api.POST("/proofs/:id/validate", proofHandler.ValidateProof)
		api.GET("/proofs/:id/rewards", proofHandler.GetRewards)
	}
}
