// Package http provides the HTTP adapter for the invoice editor: a JSON API
// for every document operation plus the HTML preview and exports.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/rental-invoice/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	Mode         string // gin mode: debug, release or test
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxUpload    int64 // multipart memory limit for logo uploads
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		Mode:         gin.ReleaseMode,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		MaxUpload:    8 << 20,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config         ServerConfig
	httpServer     *http.Server
	router         *gin.Engine
	invoiceService service.InvoiceService
	logger         Logger
}

// NewServer creates a new HTTP server for the given invoice service
func NewServer(config ServerConfig, invoiceService service.InvoiceService, logger Logger) *Server {
	// Set gin mode based on configuration
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	router := gin.New()
	if config.MaxUpload > 0 {
		router.MaxMultipartMemory = config.MaxUpload
	}

	server := &Server{
		config:         config,
		router:         router,
		invoiceService: invoiceService,
		logger:         logger,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.router.Use(gin.Recovery())

	// Logging middleware
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// Process request
		c.Next()

		// Log request details
		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.invoiceService, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	// HTML preview
	s.router.GET("/preview", handlers.Preview)

	// API routes
	api := s.router.Group("/api/invoice")
	{
		// Document
		api.GET("", handlers.GetInvoice)
		api.PUT("", handlers.ReplaceInvoice)

		// Fields and parties
		api.PUT("/fields/:field", handlers.UpdateField)
		api.PUT("/tax-rate", handlers.UpdateTaxRate)
		api.PUT("/parties/:party/:field", handlers.UpdateParty)

		// Logo
		api.POST("/logo", handlers.UploadLogo)
		api.DELETE("/logo", handlers.RemoveLogo)

		// Line items
		api.POST("/items", handlers.AddItem)
		api.PUT("/items/:id/:field", handlers.UpdateItem)
		api.DELETE("/items/:id", handlers.RemoveItem)

		// Exports
		api.GET("/export/:format", handlers.Export)
	}
}

// Start starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
