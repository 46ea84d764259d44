package api

import (
	"net/http"
	"strconv"
	"time"

	"backoffice/config"
	"backoffice/internal/auth"
	"backoffice/internal/service"
	"backoffice/internal/store"
	"backoffice/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	store         *store.Store
	authenticator *auth.Authenticator
	orderService  *service.OrderService
	analytics     *service.AnalyticsService
	cfg           *config.Config
}

// NewHandler creates a new HTTP handler
func NewHandler(
	store *store.Store,
	authenticator *auth.Authenticator,
	orderService *service.OrderService,
	analytics *service.AnalyticsService,
	cfg *config.Config,
) *Handler {
	return &Handler{
		store:         store,
		authenticator: authenticator,
		orderService:  orderService,
		analytics:     analytics,
		cfg:           cfg,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())
	router.Use(auth.SessionMiddleware(
		h.cfg.Session.Secret,
		h.cfg.Session.MaxAge,
		h.cfg.Server.Env == "production"))

	router.SetFuncMap(templateFuncs())
	router.LoadHTMLGlob("web/templates/*.tmpl")
	router.Static("/static", "web/static")

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", h.home)

	router.GET("/login", auth.RedirectIfAuthenticated(), h.loginForm)
	router.POST("/login", auth.RedirectIfAuthenticated(), h.login)
	router.POST("/logout", h.logout)

	dash := router.Group("/dashboard", auth.RequireAuth())
	{
		dash.GET("", h.overview)
		dash.GET("/products", h.products)
		dash.GET("/products/brands", h.brands)
		dash.GET("/products/categories", h.categories)
		dash.GET("/products/colors", h.colors)
		dash.GET("/products/sizes", h.sizes)
		dash.GET("/reports", h.reports)
		dash.GET("/users", h.users)
		dash.GET("/users/:id", h.userDetail)
		dash.GET("/orders", h.orders)
		dash.GET("/orders/:id", h.orderDetail)
		dash.GET("/settings", h.settings)
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/orders", h.placeOrder)
		v1.GET("/orders/:id", h.getOrder)
		v1.POST("/orders/:id/cancel", h.cancelOrder)
		v1.POST("/orders/:id/status", h.updateOrderStatus)
		v1.GET("/products/:id", h.getProduct)
		v1.GET("/product-types/:id/sizes", h.getProductTypeSizes)
	}

	router.NoRoute(h.notFound)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck verifies the database is reachable
func (h *Handler) readinessCheck(c *gin.Context) {
	if err := h.store.GetDB().PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
