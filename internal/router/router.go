// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/handlers"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

// Initialize builds the engine. The caller owns limits and stops them once
// the server is down.
func Initialize(svc *services.Services, cfg *config.Config, limits *middleware.RateLimiters) *gin.Engine {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc.Auth)
	userHandler := handlers.NewUserHandler(svc.Users)
	adminHandler := handlers.NewAdminHandler(svc.Users, svc.Orders)
	productHandler := handlers.NewProductHandler(svc.Products)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	orderHandler := handlers.NewOrderHandler(svc.Orders)
	paymentHandler := handlers.NewPaymentHandler(svc.Payments, svc.Orders)
	uploadHandler := handlers.NewUploadHandler(svc.Storage)

	authRequired := middleware.AuthRequired(svc.Auth)
	adminRequired := middleware.AdminRequired()

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(limits.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})

	api := r.Group("/api")
	{
		// Product routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/top", productHandler.GetTopProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("/:id/reviews", authRequired, productHandler.CreateReview)

			admin := products.Group("")
			admin.Use(authRequired, adminRequired)
			{
				admin.POST("", productHandler.CreateProduct)
				admin.PUT("/:id", productHandler.UpdateProduct)
				admin.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		// Category routes
		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id", categoryHandler.GetCategory)

			admin := categories.Group("")
			admin.Use(authRequired, adminRequired)
			{
				admin.POST("", categoryHandler.CreateCategory)
				admin.PUT("/:id", categoryHandler.UpdateCategory)
				admin.DELETE("/:id", categoryHandler.DeleteCategory)
			}
		}

		// User routes
		users := api.Group("/users")
		{
			users.POST("", limits.AuthRateLimit(), authHandler.Register)
			users.POST("/login", limits.AuthRateLimit(), authHandler.Login)
			users.POST("/logout", authRequired, authHandler.Logout)
			users.GET("/profile", authRequired, userHandler.GetProfile)
			users.PUT("/profile", authRequired, userHandler.UpdateProfile)

			admin := users.Group("")
			admin.Use(authRequired, adminRequired)
			{
				admin.GET("", adminHandler.GetUsers)
				admin.GET("/:id", adminHandler.GetUser)
				admin.PUT("/:id", adminHandler.UpdateUser)
				admin.DELETE("/:id", adminHandler.DeleteUser)
			}
		}

		// Order routes
		orders := api.Group("/orders")
		orders.Use(authRequired)
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/myorders", orderHandler.GetMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/pay", orderHandler.PayOrder)
			orders.POST("/:id/payment-intent", paymentHandler.CreatePaymentIntent)
			orders.GET("", adminRequired, adminHandler.GetOrders)
			orders.PUT("/:id/deliver", adminRequired, adminHandler.DeliverOrder)
		}

		api.POST("/upload", authRequired, adminRequired, limits.UploadRateLimit(), uploadHandler.UploadImage)
		api.GET("/config/paypal", paymentHandler.GetPayPalConfig)
	}

	// Locally stored uploads
	r.Static(services.LocalURLPrefix, cfg.Upload.Dir)

	r.NoRoute(func(c *gin.Context) {
		utils.NotFoundResponse(c, i18n.KeyNotFound, c.Request.URL.Path)
	})

	return r
}
