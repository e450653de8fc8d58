// Package httpapi wires the Gin engine: middleware, the ledger handlers,
// health, metrics and API docs.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tbourn/juris-ledger/internal/config"
	"github.com/tbourn/juris-ledger/internal/events"
	"github.com/tbourn/juris-ledger/internal/http/docs"
	"github.com/tbourn/juris-ledger/internal/http/handlers"
	"github.com/tbourn/juris-ledger/internal/http/middleware"
	"github.com/tbourn/juris-ledger/internal/repo"
	"github.com/tbourn/juris-ledger/internal/services"
)

const eventsPath = "/events"

// RegisterRoutes attaches middleware and every endpoint to r.
//
// Middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. Logger
//  4. Recovery
//  5. Body size limit
//  6. Metrics
//  7. gzip (not on the event stream)
//  8. CORS (only when origins are configured), the cross-origin write
//     guard and security headers
//
// Backup and restore routes additionally go through a per-IP rate limiter
// and are marked uncacheable.
func RegisterRoutes(r *gin.Engine, st *repo.Store, bus *events.Bus, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(limitBody(cfg.MaxBodyBytes))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{joinPath(cfg.APIBasePath, eventsPath), "/metrics"})))

	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	}
	r.Use(middleware.RejectForeignWrites(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			handlers.Fail(c, http.StatusServiceUnavailable, handlers.ErrCodeUnavailable, "database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(handlers.Services{
		Clients:      services.NewClientService(st, bus),
		Actions:      services.NewActionService(st, bus),
		Payments:     services.NewPaymentService(st, bus),
		Balance:      services.NewBalanceService(st),
		Backup:       services.NewBackupService(st, bus, cfg.BackupDir),
		Feed:         bus,
		AllowOrigins: cfg.CORS.AllowedOrigins,
	})

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/clients", h.ListClients)
		api.POST("/clients", h.CreateClient)
		api.GET("/clients/:id", h.GetClient)
		api.PUT("/clients/:id", h.UpdateClient)
		api.DELETE("/clients/:id", h.DeleteClient)
		api.GET("/clients/:id/totals", h.ClientTotals)
		api.GET("/clients/:id/actions", h.ListClientActions)
		api.GET("/clients/:id/payments", h.ListClientPayments)

		api.POST("/actions", h.CreateAction)
		api.GET("/actions/:id", h.GetAction)
		api.PUT("/actions/:id", h.UpdateAction)
		api.DELETE("/actions/:id", h.DeleteAction)
		api.GET("/actions/:id/totals", h.ActionTotals)
		api.GET("/actions/:id/payments", h.ListActionPayments)

		api.GET("/payments", h.ListPayments)
		api.POST("/payments", h.CreatePayment)
		api.GET("/payments/:id", h.GetPayment)
		api.PUT("/payments/:id", h.UpdatePayment)
		api.DELETE("/payments/:id", h.DeletePayment)

		api.GET("/balance/receivable", h.GlobalReceivable)
		api.GET("/balance/reconcile", h.Reconcile)
		api.GET("/balance/revenue", h.Revenue)

		api.GET(eventsPath, h.StreamEvents)
	}

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	bk := api.Group("", rl.Handler(), middleware.SecurityHeaders(middleware.SecurityOptions{NoStore: true}))
	{
		bk.POST("/backup", h.Backup)
		bk.GET("/backup", h.DownloadBackup)
		bk.POST("/restore", h.Restore)
		bk.POST("/restore/upload", h.RestoreUpload)
	}
}

// corsMiddleware admits the configured origins; a lone "*" admits all.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cors.New(cc)
}

// limitBody caps request bodies with http.MaxBytesReader. maxBytes <= 0
// disables the cap.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

func joinPath(base, p string) string {
	if base == "" || base == "/" {
		return p
	}
	return base + p
}
