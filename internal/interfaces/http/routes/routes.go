// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/coffeeshop-backend/internal/config"
	redisdb "github.com/your-org/coffeeshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/coffeeshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/coffeeshop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every route group onto the API router
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, redisClient, cfg)
	SetupCatalogRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, redisClient, cfg)
	SetupOrderRoutes(rg, db, redisClient, cfg)
	SetupFeedbackRoutes(rg, db, cfg)
	SetupAdminRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/change-password", authHandler.ChangePassword)
			protected.GET("/validate", authHandler.ValidateToken)
		}
	}
}

// SetupCatalogRoutes sets up menu browsing routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.SearchProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories)
		categories.GET("/:id/products", catalogHandler.GetCategoryProducts)
	}

	rg.GET("/banner", catalogHandler.GetBanner)
}

// SetupCartRoutes sets up session cart routes. Carts work for guests
// and authenticated users alike; the session cookie identifies the cart.
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.DELETE("/items", cartHandler.RemoveItems)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

// SetupOrderRoutes sets up checkout and order history routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/receipt", orderHandler.DownloadReceipt)
	}

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware(cfg))
	{
		checkout.POST("", checkoutHandler.Checkout)
	}
}

// SetupFeedbackRoutes sets up customer feedback routes
func SetupFeedbackRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	feedbackHandler := handlers.NewFeedbackHandler(db)

	// Submission is public; anyone can leave feedback
	rg.POST("/feedback", feedbackHandler.Submit)
}

// SetupAdminRoutes sets up admin related routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	adminOrderHandler := handlers.NewAdminOrderHandler(db, redisClient, cfg)
	feedbackHandler := handlers.NewFeedbackHandler(db)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg)) // Require authentication
	admin.Use(middleware.AdminMiddleware())   // Require admin privileges
	{
		// Menu management
		products := admin.Group("/products")
		{
			products.POST("", catalogHandler.CreateProduct)
			products.PUT("/:id", catalogHandler.UpdateProduct)
			products.DELETE("/:id", catalogHandler.DeleteProduct)
		}

		// Transaction history and archival
		orders := admin.Group("/orders")
		{
			orders.GET("", adminOrderHandler.ListOrders)
			orders.POST("/archive", adminOrderHandler.ArchiveOrders)
			orders.GET("/archived", adminOrderHandler.ListArchivedOrders)
		}

		// Feedback moderation
		feedback := admin.Group("/feedback")
		{
			feedback.GET("", feedbackHandler.List)
			feedback.GET("/:id", feedbackHandler.Get)
			feedback.PUT("/:id/status", feedbackHandler.UpdateStatus)
			feedback.DELETE("/:id", feedbackHandler.Delete)
		}
	}
}
