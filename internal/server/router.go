// Package server exposes the derived dashboard views as a read-only JSON
// API for programmatic consumers.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/onearthlouis/stock-radar/internal/service"
)

type Server struct {
	dashboard *service.Dashboard
	logger    *slog.Logger
}

func New(dashboard *service.Dashboard, logger *slog.Logger) *Server {
	return &Server{
		dashboard: dashboard,
		logger:    logger.With("component", "server"),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/overview", s.getOverview)
		api.GET("/sites", s.getSites)
		api.GET("/news", s.getNews)
		api.GET("/hot-topics", s.getHotTopics)
		api.POST("/refresh", s.postRefresh)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
		})
	}

	return r
}
