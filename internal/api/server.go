package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hypotest/internal/config"
)

// Server hosts the hypothesis-test endpoints.
type Server struct {
	router *gin.Engine
	logger zerolog.Logger
	synth  *Synthesizer
}

// NewServer wires the router, middleware, and routes.
func NewServer(logger zerolog.Logger, cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router: gin.New(),
		logger: logger,
		synth:  NewSynthesizer(cfg.Stats.SyntheticSeed),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(RequestLogger(logger))
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	base := s.router.Group("/hypothesis/api")
	base.POST("/z-test", s.handleZTest)
	base.POST("/two-sample-ztest", s.handleTwoSampleZTest)
	base.POST("/two-sample-ztest/upload", s.handleTwoSampleZTestUpload)
	base.POST("/one-sample-t-test", s.handleOneSampleTTest)
	base.POST("/two-sample-t-test", s.handleTwoSampleTTest)
	base.POST("/two-sample-t-test/upload", s.handleTwoSampleTTestUpload)
	base.POST("/paired-t-test", s.handlePairedTTest)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks serving HTTP on the given port.
func (s *Server) Run(port string) error {
	s.logger.Info().Str("port", port).Msg("starting hypothesis API server")
	return s.router.Run(":" + port)
}
