// Package http exposes the local control API the mobile UI talks to.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskpilot-voice/internal/app/interaction"
	"taskpilot-voice/internal/domain/eventbus"
	"taskpilot-voice/internal/platform/config"
	"taskpilot-voice/internal/platform/errors"
	"taskpilot-voice/internal/platform/logging"
)

// Server hosts the REST control endpoints and the websocket event
// stream on one port.
type Server struct {
	cfg    *config.Config
	logger *logging.Logger
	engine *interaction.Engine
	hub    *Hub
	http   *http.Server
}

func NewServer(cfg *config.Config, logger *logging.Logger, bus *eventbus.Bus, engine *interaction.Engine) (*Server, error) {
	hub, err := NewHub(bus, logger)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		engine: engine,
		hub:    hub,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	s.registerRoutes(router)

	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Web.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoTag("HTTP", "control api listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(errors.KindTransport, "serve", "control api failed", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.Close()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.KindTransport, "shutdown", "control api shutdown", err)
	}
	return nil
}

func (s *Server) registerRoutes(router *gin.Engine) {
	api := router.Group("/api/voice")
	api.POST("/start", s.handleStart)
	api.POST("/stop", s.handleStop)
	api.POST("/text", s.handleText)
	api.GET("/status", s.handleStatus)
	api.GET("/events", s.hub.HandleConnection)
}

func (s *Server) handleStart(c *gin.Context) {
	if err := s.engine.StartListening(); err != nil {
		status := http.StatusInternalServerError
		if errors.IsKind(err, errors.KindState) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "listening"})
}

func (s *Server) handleStop(c *gin.Context) {
	s.engine.Stop()
	c.JSON(http.StatusOK, gin.H{"status": "idle"})
}

type textRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) handleText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if err := s.engine.SubmitText(req.Text); err != nil {
		status := http.StatusInternalServerError
		if errors.IsKind(err, errors.KindState) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "processing"})
}

func (s *Server) handleStatus(c *gin.Context) {
	state, isRecording, isSpeaking := s.engine.Status()
	c.JSON(http.StatusOK, gin.H{
		"state":        state,
		"is_recording": isRecording,
		"is_speaking":  isSpeaking,
	})
}
