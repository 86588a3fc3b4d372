package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/epd-dashboard/internal/server/handlers"
	"github.com/mamadbah2/epd-dashboard/internal/session"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Processes *handlers.ProcessHandler
	Products  *handlers.ProductHandler
	Health    *handlers.HealthHandler
}

// Options carries what the router needs beyond the handlers.
type Options struct {
	Identity  session.Identity
	LoginPath string
	Renderer  render.HTMLRender
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, opts Options, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.LoginPath == "" {
		opts.LoginPath = "/login"
	}

	r := gin.New()
	r.HTMLRender = opts.Renderer
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(session.Bind())

	r.GET("/healthz", h.Health.Health)
	r.GET(opts.LoginPath, h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)

	app := r.Group("/", session.Gate(opts.Identity, opts.LoginPath, logger.Named("session")))
	{
		app.GET("/", h.Processes.Home)
		app.GET("/processes", h.Processes.List)
		app.GET("/processes/:processId", h.Processes.Detail)

		app.GET("/products", h.Products.List)
		app.POST("/products/import", h.Products.Import)
		app.GET("/products/:productId", h.Products.Detail)
		app.POST("/products/:productId", h.Products.Update)
		app.POST("/products/:productId/delete", h.Products.Delete)
		app.GET("/products/:productId/components", h.Products.Components)
		app.GET("/products/:productId/routings", h.Products.Routings)
		app.POST("/products/:productId/routings/import", h.Products.ImportRoutings)
		app.GET("/products/:productId/quality-hours-report", h.Products.QualityHours)
		app.GET("/products/:productId/quality-hours-report.xlsx", h.Products.ExportQualityHours)
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "page not found")
	})

	logger.Info("router initialized")

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	}
}
