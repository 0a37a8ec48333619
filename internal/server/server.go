// Package server exposes the supervisor over HTTP: a query endpoint, an
// agent directory listing, and a health probe.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ShayCichocki/maestro/internal/logging"
	"github.com/ShayCichocki/maestro/internal/registry"
	"github.com/ShayCichocki/maestro/internal/supervisor"
)

// queryRequest is the POST /api/query body.
type queryRequest struct {
	Query          string         `json:"query" binding:"required"`
	UserID         string         `json:"user_id"`
	ConversationID string         `json:"conversation_id"`
	Context        map[string]any `json:"context"`
	Debug          bool           `json:"debug"`
}

// queryResponse wraps the supervisor's answer with the conversation id so
// clients can continue the conversation on the next request.
type queryResponse struct {
	supervisor.Response
	ConversationID string `json:"conversation_id"`
}

// agentInfo is one entry of the GET /api/agents listing.
type agentInfo struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Endpoint string   `json:"endpoint,omitempty"`
	Intent   string   `json:"intent,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Server is the HTTP front door for the supervisor.
type Server struct {
	supervisor *supervisor.Supervisor
	registry   *registry.Registry
	log        *logging.Logger
	httpServer *http.Server
}

// Options configures the HTTP server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// EnableCORS allows cross-origin browser clients.
	EnableCORS bool
	// Debug keeps gin in debug mode instead of release mode.
	Debug bool
}

// New creates a Server for the given supervisor and registry.
func New(sup *supervisor.Supervisor, reg *registry.Registry, log *logging.Logger, opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logging.Nop()
	}

	s := &Server{
		supervisor: sup,
		registry:   reg,
		log:        log,
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	if opts.EnableCORS {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := router.Group("/api")
	{
		api.POST("/query", s.handleQuery)
		api.GET("/agents", s.handleAgents)
		api.GET("/health", s.handleHealth)
	}

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	return s
}

// Run starts serving and blocks until the server stops.
func (s *Server) Run() error {
	s.log.Log("[server] listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	resp := s.supervisor.HandleQuery(c.Request.Context(), supervisor.Request{
		Query:          req.Query,
		UserID:         req.UserID,
		ConversationID: conversationID,
		Context:        req.Context,
		Debug:          req.Debug,
	})
	c.JSON(http.StatusOK, queryResponse{
		Response:       resp,
		ConversationID: conversationID,
	})
}

func (s *Server) handleAgents(c *gin.Context) {
	metas := s.registry.List()
	agents := make([]agentInfo, 0, len(metas))
	for _, meta := range metas {
		agents = append(agents, agentInfo{
			Name:     meta.Name,
			Type:     string(meta.Type),
			Endpoint: meta.Endpoint,
			Intent:   meta.Intent,
			Keywords: meta.Keywords,
		})
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"agents": s.registry.Len(),
	})
}
