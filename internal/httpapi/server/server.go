package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fortuneworks/fortune/internal/httpapi/handlers"
	"github.com/fortuneworks/fortune/internal/httpapi/middleware"
	"github.com/fortuneworks/fortune/pkg/config"
	"github.com/fortuneworks/fortune/pkg/service"
)

type APIServer struct {
	config *config.BackendConfig
	router *gin.Engine
	server *http.Server
}

func NewAPIServer(cfg *config.BackendConfig, svc *service.Service) *APIServer {
	if cfg.Environment == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.JSON(http.StatusInternalServerError, "internal server error")
	}))
	router.Use(middleware.CORS(&cfg.CORS))
	router.HandleMethodNotAllowed = true

	s := &APIServer{
		config: cfg,
		router: router,
	}

	s.setupRoutes(handlers.NewHandlers(svc))
	return s
}

func (s *APIServer) setupRoutes(h *handlers.Handlers) {
	// /fortunes/random must be registered alongside /fortunes/:id; gin gives
	// the static segment priority over the parameter.
	s.router.GET("/fortunes", h.ListFortunes)
	s.router.GET("/fortunes/random", h.RandomFortune)
	s.router.GET("/fortunes/:id", h.GetFortune)
	s.router.POST("/fortunes", h.CreateFortune)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, "not found")
	})
	s.router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, "method not allowed")
	})
}

// Router exposes the route table for tests.
func (s *APIServer) Router() *gin.Engine {
	return s.router
}

func (s *APIServer) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler: s.router,
	}

	go s.StopServer()
	logrus.WithField("address", s.server.Addr).Info("starting fortune backend server")
	if err := s.server.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			logrus.Info("fortune backend server stopped")
			return nil
		}
		return fmt.Errorf("failed to start fortune backend server: %w", err)
	}
	return nil
}

func (s *APIServer) StopServer() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down fortune backend server")

	if err := s.server.Shutdown(context.Background()); err != nil {
		logrus.WithError(err).Error("error during backend server shutdown")
	}
}
