// Package server exposes the daemon's HTTP surface: the event ingest and
// control endpoints used by the browser side, the WebSocket viewer routes,
// and the health/stats endpoints.
package server

import (
	"net/http"
	"net/http/pprof"

	"github.com/gin-gonic/gin"

	"github.com/walexbarnes/nosey-web-sdk/internal/hub"
	"github.com/walexbarnes/nosey-web-sdk/internal/model"
	"github.com/walexbarnes/nosey-web-sdk/internal/pipeline"
	"github.com/walexbarnes/nosey-web-sdk/internal/settings"
	"github.com/walexbarnes/nosey-web-sdk/internal/stats"
)

// Server holds the Gin engine and the capture core dependencies.
type Server struct {
	engine   *gin.Engine
	pipeline *pipeline.Pipeline
	hub      *hub.Hub
	settings *settings.Store
	stats    *stats.Collector
	port     string
}

// New creates the daemon server.
func New(p *pipeline.Pipeline, h *hub.Hub, s *settings.Store, st *stats.Collector, port string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	// Disable automatic redirects that cause 301 issues.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	srv := &Server{
		engine:   engine,
		pipeline: p,
		hub:      h,
		settings: s,
		stats:    st,
		port:     port,
	}

	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	// Event ingest: one lifecycle observation per request.
	s.engine.POST("/events", s.handleEvent)

	// Synchronous control messages from the popup/panel.
	s.engine.POST("/control", s.handleControl)

	// Viewer connections.
	s.engine.GET("/ws", s.handleWebSocket)

	// Health check.
	s.engine.GET("/healthz", func(c *gin.Context) {
		snap := s.stats.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"uptime":     snap.Uptime,
			"listening":  s.settings.IsListening(),
			"matched":    snap.MatchedRequests,
			"panels":     snap.Panels,
			"cache_size": snap.CacheSize,
		})
	})

	// Metrics API.
	s.engine.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.stats.Snapshot())
	})

	// pprof profiling endpoints.
	s.engine.GET("/debug/pprof/", gin.WrapF(pprof.Index))
	s.engine.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
	s.engine.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
	s.engine.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
	s.engine.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	s.engine.GET("/debug/pprof/allocs", gin.WrapH(pprof.Handler("allocs")))
	s.engine.GET("/debug/pprof/heap", gin.WrapH(pprof.Handler("heap")))
	s.engine.GET("/debug/pprof/goroutine", gin.WrapH(pprof.Handler("goroutine")))
}

// handleEvent feeds one lifecycle event into the pipeline. The browser side
// fires these and does not wait on the outcome.
func (s *Server) handleEvent(c *gin.Context) {
	var ev model.NetworkEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid event format"})
		return
	}

	s.pipeline.Handle(ev)
	c.Status(http.StatusAccepted)
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	return s.engine.Run(":" + s.port)
}
