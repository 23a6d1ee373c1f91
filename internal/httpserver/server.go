// Package httpserver wraps the protocol adapter in an HTTP transport:
// a single POST /mcp endpoint carrying the JSON-RPC envelope, plus the
// health and readiness documents a deployment expects.
package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nwsl-data/nwsl-analytics/jsonrpc"
)

// Pinger is the slice of the store the readiness probe needs
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server serves the JSON-RPC envelope over HTTP
type Server struct {
	handler jsonrpc.Handler
	log     *logrus.Logger
	store   Pinger
	engine  *gin.Engine
	ready   atomic.Bool

	name    string
	version string
}

// New builds the HTTP transport around a protocol handler. The store is
// only used by the readiness probe; pass nil to report ready immediately.
func New(handler jsonrpc.Handler, store Pinger, log *logrus.Logger, name, version string, production bool) *Server {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		handler: handler,
		log:     log,
		store:   store,
		name:    name,
		version: version,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestLogger(log))

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/ready", s.handleReady)
	router.POST("/mcp", s.handleMCP)

	s.engine = router
	return s
}

// SetReady flips the readiness probe once the adapter is fully wired
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Engine exposes the router for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to shutdownTimeout
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	s.log.WithField("addr", addr).Info("http server listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down, draining in-flight requests")
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(drainCtx)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":     s.name,
		"version":  s.version,
		"protocol": "mcp",
		"endpoint": "/mcp",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleReady(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	if s.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// handleMCP decodes one JSON-RPC envelope, dispatches it, and writes the
// response. Parse failures answer with a null id; envelope problems get
// InvalidRequest before any dispatch.
func (s *Server) handleMCP(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, jsonrpc.NewResponse(nil, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrParse, "failed to read request body: %v", err)))
		return
	}

	var request jsonrpc.Request
	if err := json.Unmarshal(body, &request); err != nil {
		c.JSON(http.StatusOK, jsonrpc.NewResponse(nil, nil,
			jsonrpc.NewError(jsonrpc.ErrParse, err.Error())))
		return
	}

	if request.Method == "" {
		c.JSON(http.StatusOK, jsonrpc.NewResponse(request.Id, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrInvalidRequest, "missing method")))
		return
	}

	response := s.handler.Handle(c.Request.Context(), request)
	c.JSON(http.StatusOK, response)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
