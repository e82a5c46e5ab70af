// Package api exposes the pipeline over HTTP: question submission, health
// and prometheus metrics.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/lucide-ai/lucide/pkg/models"
	"github.com/lucide-ai/lucide/pkg/pipeline"
)

// Server is the HTTP front of the pipeline.
type Server struct {
	pipeline *pipeline.Pipeline
	rdb      *redis.Client
	registry *prometheus.Registry
	logger   *slog.Logger
	http     *http.Server
}

// NewServer wires the HTTP layer. The redis client is used for health checks
// only; the registry backs the /metrics endpoint.
func NewServer(p *pipeline.Pipeline, rdb *redis.Client, registry *prometheus.Registry, listenAddr string) *Server {
	s := &Server{
		pipeline: p,
		rdb:      rdb,
		registry: registry,
		logger:   slog.With("component", "api"),
	}
	s.http = &http.Server{
		Addr:              listenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(s.logger), gin.Recovery())

	router.GET("/healthz", s.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	v1.POST("/ask", s.Ask)

	return router
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Ask handles POST /api/v1/ask.
func (s *Server) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "question cannot be empty"})
		return
	}

	lang := models.Language(req.Language)
	if req.Language != "" && !lang.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported language: " + req.Language})
		return
	}

	bundle := s.pipeline.Process(c.Request.Context(), req.Question, req.Context, lang)

	status := "ok"
	if bundle.NeedsClarification() {
		status = "needs_clarification"
	}
	c.JSON(http.StatusOK, AskResponse{Status: status, Bundle: bundle})
}

// Health handles GET /healthz. Unreachable redis degrades the status but the
// service keeps answering: the cache layer treats backend errors as misses.
func (s *Server) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := s.rdb.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": "degraded",
			"redis":  "unreachable",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"redis":  "ok",
	})
}
