package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminports "github.com/inkwell-labs/bookstore-api/internal/domains/admin/ports"
)

// Handlers bundles the per-context API structs the router dispatches to.
type Handlers struct {
	Books  BookAPI
	Orders OrderAPI
	Admin  AdminAPI
	Auth   AuthAPI
}

// RouterConfig carries transport-level settings.
type RouterConfig struct {
	// AllowedOrigins for CORS. Empty allows none beyond same-origin.
	AllowedOrigins []string
	// UploadDir is served under /uploads when non-empty.
	UploadDir string
	// Middleware is installed before route registration; gin snapshots
	// handler chains at registration time, so middleware added later
	// never runs for already-registered routes.
	Middleware []gin.HandlerFunc
}

// NewRouter builds the gin engine with middleware and the API routes.
func NewRouter(handlers Handlers, auth adminports.Service, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), MetricsMiddleware())
	router.Use(cfg.Middleware...)

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.UploadDir != "" {
		router.Static("/uploads", cfg.UploadDir)
	}

	requireAdmin := RequireAdmin(auth)

	api := router.Group("/api")
	{
		books := api.Group("/books")
		{
			books.GET("", handlers.Books.ListBooks)
			books.GET("/:id", handlers.Books.GetBook)
			books.POST("/create-book", requireAdmin, handlers.Books.CreateBook)
			books.PUT("/edit/:id", requireAdmin, handlers.Books.UpdateBook)
			books.DELETE("/:id", requireAdmin, handlers.Books.DeleteBook)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", handlers.Orders.CreateOrder)
			orders.GET("", handlers.Orders.FindOrdersByEmail)
		}

		api.GET("/admin", requireAdmin, handlers.Admin.GetStats)
		api.POST("/auth/admin", handlers.Auth.Login)
	}

	return router
}
