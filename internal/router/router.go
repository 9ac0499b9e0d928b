// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greeniecart/greeniecart-backend/internal/cache"
	"github.com/greeniecart/greeniecart-backend/internal/config"
	"github.com/greeniecart/greeniecart-backend/internal/handlers"
	"github.com/greeniecart/greeniecart-backend/internal/middleware"
	"github.com/greeniecart/greeniecart-backend/internal/services"
	"github.com/greeniecart/greeniecart-backend/internal/store"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, blacklist *cache.TokenBlacklist) *gin.Engine {
	// Initialize store and services
	st := store.NewGormStore(db)
	aggregator := services.NewAggregator(st)

	notificationService := services.NewNotificationService(cfg)
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg, blacklist, notificationService)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db)
	cartService := services.NewCartService(st)
	checkoutService := services.NewCheckoutService(st, userService, notificationService, aggregator)
	orderService := services.NewOrderService(st, aggregator)
	fulfillmentService := services.NewFulfillmentService(st, aggregator)
	assistantService := services.NewAssistantService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	fulfillmentHandler := handlers.NewFulfillmentHandler(fulfillmentService)
	assistantHandler := handlers.NewAssistantHandler(assistantService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(blacklist), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/verify-email", authHandler.VerifyEmail)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired(blacklist))
		{
			users.GET("/me", userHandler.GetProfile)
			users.PUT("/me", userHandler.UpdateProfile)
			users.GET("/me/address", userHandler.GetSavedAddress)
			users.GET("/me/products", userHandler.ListMyProducts)
		}

		// Product catalog routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.SearchProducts)
			products.GET("/categories", productHandler.ListCategories)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)

			// Authenticated routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired(blacklist))
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/image", productHandler.UploadImage)
			}
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired(blacklist))
		{
			cart.GET("", cartHandler.ListItems)
			cart.POST("/items", cartHandler.AddItem)
			cart.PATCH("/items/:id", cartHandler.SetQuantity)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		// Checkout
		v1.POST("/checkout", middleware.AuthRequired(blacklist), middleware.CheckoutRateLimit(), checkoutHandler.Checkout)

		// Buyer order tracking
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired(blacklist))
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/ship", orderHandler.MarkShipped)
			orders.POST("/:id/complete", orderHandler.MarkCompleted)
		}

		// Seller fulfillment
		seller := v1.Group("/seller")
		seller.Use(middleware.AuthRequired(blacklist))
		{
			seller.GET("/orders", fulfillmentHandler.ListReceived)
			seller.GET("/stats", fulfillmentHandler.Stats)
		}

		// Shopping assistant
		v1.POST("/assistant/chat", middleware.OptionalAuth(), middleware.AssistantRateLimit(), assistantHandler.Chat)
	}

	return r
}
