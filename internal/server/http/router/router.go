package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/courierdesk/internal/server/http/handlers"
	"github.com/polkiloo/courierdesk/internal/server/http/middleware"
	"github.com/polkiloo/courierdesk/internal/server/http/validation"
)

// Module provides the API engine to the fx graph.
var Module = fx.Provide(Setup)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CourierFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	validate := validation.New()
	authHandler := handlers.NewAuthHandler(facade, validate)
	orderHandler := handlers.NewOrderHandler(facade, validate)
	pricingHandler := handlers.NewPricingHandler(facade, validate)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Check)
	engine.POST("/admin/login", authHandler.Login)

	order := engine.Group("/order")
	order.POST("/create", orderHandler.Create)
	order.GET("/track/:orderId", orderHandler.Track)
	order.GET("/price", pricingHandler.Quote)
	order.GET("/price/ranges", pricingHandler.Ranges)

	admin := order.Group("")
	admin.Use(middleware.AuthRequired(facade))
	admin.GET("/all", orderHandler.List)
	admin.GET("/stats", orderHandler.Stats)
	admin.PATCH("/:orderId", orderHandler.UpdateStatus)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return engine
}
