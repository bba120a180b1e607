// Package api serves the card engine over HTTP with gin. Engine outcomes,
// including fallback and validation cards, are always 200 responses carrying
// a card document; only transport problems (oversized bodies, unreadable
// requests) use error statuses.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-cardgen/internal/logger"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
)

// DefaultMaxBodyBytes caps request bodies unless overridden.
const DefaultMaxBodyBytes int64 = 1 << 20

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxBodyBytes sets the request body limit. Non-positive values keep the
// default.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// Server is the HTTP surface of the engine.
type Server struct {
	router  *gin.Engine
	orch    *orchestrator.Orchestrator
	logger  *logger.Logger
	maxBody int64
}

// NewServer builds the router. Call gin.SetMode beforehand to pick the gin
// mode.
func NewServer(orch *orchestrator.Orchestrator, options ...Option) *Server {
	s := &Server{
		orch:    orch,
		logger:  logger.Nop(),
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	s.router = r
	s.registerRoutes()
	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.router }

// Engine returns the gin engine.
func (s *Server) Engine() *gin.Engine { return s.router }

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.health)

	v1 := s.router.Group("/v1")
	{
		v1.GET("/templates", s.templates)
		v1.POST("/cards/:template", s.renderCard)
		v1.POST("/forms", s.createForm)
		v1.POST("/forms/submit", s.submitForm)
		v1.POST("/events", s.handleEvent)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
