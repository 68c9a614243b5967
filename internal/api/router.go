// internal/api/router.go
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"aiready-check/internal/common/logger"
)

// NewRouter wires the wizard endpoints. Presentation (rendering, progress
// bars) lives with the caller; this surface only moves session state.
func NewRouter(handler *Handler, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	router.GET("/healthz", handler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/sessions", handler.CreateSession)
		v1.GET("/sessions/:id", handler.GetSession)
		v1.POST("/sessions/:id/answers", handler.SetAnswer)
		v1.POST("/sessions/:id/advance", handler.Advance)
		v1.POST("/sessions/:id/retreat", handler.Retreat)
		v1.GET("/sessions/:id/result", handler.GetResult)
		v1.POST("/sessions/:id/submit", handler.Submit)
	}

	return router
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("request handled", map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}
