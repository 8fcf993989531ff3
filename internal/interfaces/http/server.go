// Package http is the HTTP adapter: it translates requests into calls on
// the auth, invoice, analytics and assistant components and renders their
// results as JSON.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tareqhaboukh/project-one/internal/analytics"
	"github.com/Tareqhaboukh/project-one/internal/auth"
	"github.com/Tareqhaboukh/project-one/internal/invoice"
	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
	"github.com/Tareqhaboukh/project-one/internal/storage"
)

// InvoiceParser runs the PDF extraction pipeline
type InvoiceParser interface {
	Parse(data []byte, registry []models.VendorRef) (*invoice.ParsedInvoice, error)
}

// Asker answers a question against the current database state
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host          string
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	SessionSecret string
	CookieName    string
	SessionMaxAge int
	MaxUploadSize int64
	AskTimeout    time.Duration
}

// Deps bundles the components the handlers call into
type Deps struct {
	Auth      *auth.Service
	Users     *repository.UserRepository
	Vendors   *repository.VendorRepository
	Invoices  *repository.InvoiceRepository
	Analytics *analytics.Service
	Exporter  *analytics.Exporter
	Parser    InvoiceParser
	Storage   storage.FileStorage
	Assistant Asker
}

// Server is the HTTP adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	deps       Deps
	logger     *zap.Logger
}

// NewServer creates a new HTTP server with the given dependencies
func NewServer(config ServerConfig, deps Deps, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if config.MaxUploadSize > 0 {
		router.MaxMultipartMemory = config.MaxUploadSize
	}

	s := &Server{
		config: config,
		router: router,
		deps:   deps,
		logger: logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(loggingMiddleware(s.logger))
	s.router.Use(corsMiddleware())

	store := cookie.NewStore([]byte(s.config.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.config.SessionMaxAge,
		HttpOnly: true,
	})
	s.router.Use(sessions.Sessions(s.config.CookieName, store))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/guest", s.handleGuestLogin)
		authGroup.POST("/logout", s.handleLogout)
		authGroup.GET("/me", requireLogin(), s.handleCurrentUser)
	}

	users := api.Group("/users", requireLogin())
	{
		users.GET("", s.handleListUsers)
		users.POST("", s.handleCreateUser)
		users.GET("/:id", s.handleGetUser)
		users.PUT("/:id", s.handleUpdateUser)
		users.DELETE("/:id", s.handleDeleteUser)
		users.POST("/:id/check-password", s.handleCheckPassword)
	}

	vendors := api.Group("/vendors", requireLogin())
	{
		vendors.GET("", s.handleListVendors)
		vendors.POST("", s.handleCreateVendor)
		vendors.GET("/:id", s.handleGetVendor)
		vendors.PUT("/:id", s.handleUpdateVendor)
		vendors.DELETE("/:id", s.handleDeleteVendor)
	}

	invoices := api.Group("/invoices", requireLogin())
	{
		invoices.GET("", s.handleListInvoices)
		invoices.POST("", s.handleCreateInvoice)
		invoices.POST("/parse", s.handleParseInvoice)
		invoices.GET("/:id", s.handleGetInvoice)
		invoices.PUT("/:id", s.handleUpdateInvoice)
		invoices.DELETE("/:id", s.handleDeleteInvoice)
	}

	analyticsGroup := api.Group("/analytics", requireLogin())
	{
		analyticsGroup.GET("/summary", s.handleAnalyticsSummary)
		analyticsGroup.GET("/vendors", s.handleVendorSpend)
		analyticsGroup.GET("/monthly", s.handleMonthlySpend)
		analyticsGroup.GET("/export", s.handleExportReport)
	}

	api.POST("/assistant/ask", requireLogin(), s.handleAsk)
}

// Start runs the server until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
