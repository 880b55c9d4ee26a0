package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// SecretHeader carries the secret Telegram echoes back on every webhook call
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Processor handles one decoded Telegram update
type Processor func(ctx context.Context, update tgbotapi.Update) error

// Config holds webhook server configuration
type Config struct {
	Addr       string
	Secret     string
	RatePerSec float64
	Burst      int
}

type Server struct {
	config  Config
	process Processor
	router  *gin.Engine
}

func NewServer(config Config, process Processor) *Server {
	if config.RatePerSec <= 0 {
		config.RatePerSec = 30
	}
	if config.Burst <= 0 {
		config.Burst = int(config.RatePerSec)
	}

	s := &Server{
		config:  config,
		process: process,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", s.health)

	api := router.Group("/api", newRateLimiter(config.RatePerSec, config.Burst).middleware())
	{
		api.POST("/webhook", s.requireSecret(), s.webhook)
	}

	s.router = router
	return s
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.config.Addr).Info("Webhook server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("webhook server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("webhook server shutdown: %w", err)
	}
	log.Info("Webhook server stopped")
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) requireSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.config.Secret == "" {
			c.Next()
			return
		}

		got := c.GetHeader(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.config.Secret)) != 1 {
			log.WithField("client_ip", c.ClientIP()).Warn("Rejected webhook call with bad secret")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func (s *Server) webhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid update payload"})
		return
	}

	if err := s.process(c.Request.Context(), update); err != nil {
		log.WithFields(log.Fields{
			"telegram_update_id": update.UpdateID,
			"error":              err,
		}).Error("Failed to process webhook update")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to process update"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("HTTP request")
	}
}
