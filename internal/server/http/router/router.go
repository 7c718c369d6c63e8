package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/lafrite/friterie/internal/adapter/payment"
	"github.com/lafrite/friterie/internal/server/http/handlers"
	"github.com/lafrite/friterie/internal/server/http/middleware"
	"github.com/lafrite/friterie/internal/server/ws"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, verifier *payment.SignatureVerifier, hub *ws.Hub, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	checkoutHandler := handlers.NewCheckoutHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade, verifier, logger)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade, hub, logger)

	api := engine.Group("/api")
	api.POST("/checkout", checkoutHandler.Create)
	api.POST("/orders", checkoutHandler.CreateCash)
	api.GET("/orders", orderHandler.GetBySession)
	api.GET("/orders/:id", orderHandler.GetByID)
	api.POST("/payments/webhook", webhookHandler.Receive)

	admin := api.Group("/admin")
	admin.POST("/login", adminHandler.Login)
	admin.GET("/orders/feed", adminHandler.Feed)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AdminRequired(facade))
	adminAuth.GET("/orders", adminHandler.List)
	adminAuth.POST("/orders/:id/status", adminHandler.UpdateStatus)

	return engine
}
