package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sdiagne/loansched/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares. templateGlob
// may be empty to skip HTML template loading (API-only mode, used in tests).
func New(handler *handlers.ScheduleHandler, limiter *RateLimiter, templateGlob string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	if templateGlob != "" {
		r.LoadHTMLGlob(templateGlob)
		r.GET("/", handler.Index)
	}

	calculate := gin.HandlersChain{handler.Calculate}
	if limiter != nil {
		calculate = gin.HandlersChain{RateLimitMiddleware(limiter), handler.Calculate}
	}
	r.POST("/calculate", calculate...)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
