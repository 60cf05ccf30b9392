package frontend

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fortuneworks/fortune/pkg/config"
	"github.com/fortuneworks/fortune/pkg/fortune"
)

var listTemplate = template.Must(template.New("fortunes").Parse(
	`{{range .}}    <p>{{.ID}}: {{.Message}}</p>
{{end}}`))

type newFortuneRequest struct {
	Message string `json:"message"`
}

// Server is the browser-facing frontend: it proxies API calls to the
// backend, renders the fortune list as HTML and serves static assets.
type Server struct {
	config  *config.FrontendConfig
	backend *BackendClient
	router  *gin.Engine
	server  *http.Server
}

func NewServer(cfg *config.FrontendConfig, backend *BackendClient) *Server {
	if cfg.Environment == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	s := &Server{
		config:  cfg,
		backend: backend,
		router:  router,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.healthz)
	s.router.GET("/api/random", s.randomFortune)
	s.router.GET("/api/all", s.allFortunes)
	s.router.POST("/api/add", s.addFortune)

	// Static assets are served from the root; gin cannot mount a wildcard
	// at "/" next to the routes above, so unmatched paths fall through to
	// the file server.
	static := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.NoRoute(gin.WrapH(static))
}

func (s *Server) healthz(c *gin.Context) {
	c.String(http.StatusOK, "healthy")
}

func (s *Server) randomFortune(c *gin.Context) {
	f, err := s.backend.RandomFortune(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to fetch random fortune from backend")
		c.String(http.StatusBadGateway, "failed to reach backend")
		return
	}
	c.String(http.StatusOK, f.Message)
}

func (s *Server) allFortunes(c *gin.Context) {
	fortunes, err := s.backend.ListFortunes(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to fetch fortunes from backend")
		c.String(http.StatusBadGateway, "failed to reach backend")
		return
	}

	var buf bytes.Buffer
	if err := listTemplate.Execute(&buf, fortunes); err != nil {
		logrus.WithError(err).Error("template rendering failed")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) addFortune(c *gin.Context) {
	var req newFortuneRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	// Ids are assigned client-side in the original deployment: a random
	// number below 10000. Collisions overwrite, which is accepted.
	f := fortune.Fortune{
		ID:      strconv.Itoa(rand.IntN(10000)),
		Message: req.Message,
	}

	if err := s.backend.CreateFortune(c.Request.Context(), f); err != nil {
		logrus.WithField("id", f.ID).WithError(err).Error("failed to create fortune on backend")
		c.String(http.StatusBadGateway, "failed to reach backend")
		return
	}
	c.String(http.StatusOK, "Cookie added!")
}

// Router exposes the route table for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
	}

	go s.StopServer()
	logrus.WithField("address", s.server.Addr).Info("starting fortune frontend server")
	if err := s.server.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			logrus.Info("fortune frontend server stopped")
			return nil
		}
		return fmt.Errorf("failed to start fortune frontend server: %w", err)
	}
	return nil
}

func (s *Server) StopServer() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down fortune frontend server")

	if err := s.server.Shutdown(context.Background()); err != nil {
		logrus.WithError(err).Error("error during frontend server shutdown")
	}
}
