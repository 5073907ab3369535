package http

import (
	"log/slog"
	"net/http"

	"github.com/aq2208/gstore-api/internal/adapter/http/middleware"
	"github.com/aq2208/gstore-api/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const homePath = "/"

type Handlers struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Auth     *AuthHandler
}

func NewRouter(h Handlers, authz *middleware.Authz, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(recovered), middleware.MetricsMiddleware())
	r.Use(middleware.Logging(log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "not found", "home": homePath})
	})

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Debug("health check")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/products", h.Catalog.ListProducts)
		v1.GET("/products/:id", h.Catalog.GetProduct)

		v1.GET("/cart", h.Cart.GetCart)
		v1.DELETE("/cart", h.Cart.Clear)
		v1.POST("/cart/items", h.Cart.AddItem)
		v1.PATCH("/cart/items/:id", h.Cart.UpdateItem)
		v1.DELETE("/cart/items/:id", h.Cart.RemoveItem)
		v1.POST("/cart/coupon", h.Cart.ApplyCoupon)
		v1.DELETE("/cart/coupon", h.Cart.RemoveCoupon)

		v1.POST("/checkout", h.Checkout.Checkout)
		v1.GET("/receipt", h.Checkout.Receipt)

		v1.POST("/auth/login", h.Auth.Login)
		v1.POST("/auth/register", h.Auth.Register)
		v1.POST("/auth/logout", h.Auth.Logout)
		v1.GET("/profile", authz.Require(), h.Auth.Profile)
	}

	return r
}

func recovered(c *gin.Context, err any) {
	logging.From(c).Error("panic recovered", "panic", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		gin.H{"status": http.StatusInternalServerError, "error": "unexpected error", "home": homePath})
}
