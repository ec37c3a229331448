// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/return0ok/e-market/internal/config"
	"github.com/return0ok/e-market/internal/handlers"
	"github.com/return0ok/e-market/internal/middleware"
	"github.com/return0ok/e-market/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Language())
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(middleware.GeneralRateLimit(cfg.RateLimit.GeneralPerSecond, cfg.RateLimit.GeneralBurst))
	r.Use(middleware.AuditLogger(db))

	// Services
	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)
	reviewService := services.NewReviewService(db)
	cartService := services.NewCartService(db)
	checkoutService := services.NewCheckoutService(db)
	orderService := services.NewOrderService(db)
	profileService := services.NewProfileService(db)
	sellerService := services.NewSellerService(db)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	shopHandler := handlers.NewShopHandler(catalogService, reviewService)
	cartHandler := handlers.NewCartHandler(cartService, checkoutService)
	profileHandler := handlers.NewProfileHandler(profileService, orderService)
	sellerHandler := handlers.NewSellerHandler(sellerService, orderService, storageService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit(cfg.RateLimit.AuthPerSecond, cfg.RateLimit.AuthBurst))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		profiles := v1.Group("/profiles")
		profiles.Use(middleware.AuthRequired())
		{
			profiles.GET("/me", profileHandler.GetProfile)
			profiles.PUT("/me", profileHandler.UpdateProfile)
			profiles.DELETE("/me", profileHandler.DeactivateProfile)

			profiles.GET("/me/shipping", profileHandler.ListShippingAddresses)
			profiles.POST("/me/shipping", profileHandler.CreateShippingAddress)
			profiles.GET("/me/shipping/:id", profileHandler.GetShippingAddress)
			profiles.PUT("/me/shipping/:id", profileHandler.UpdateShippingAddress)
			profiles.DELETE("/me/shipping/:id", profileHandler.DeleteShippingAddress)

			profiles.GET("/me/orders", profileHandler.ListOrders)
			profiles.GET("/me/orders/:tx_ref/items", profileHandler.ListOrderItems)
		}

		sellers := v1.Group("/sellers")
		sellers.Use(middleware.AuthRequired())
		{
			sellers.POST("/apply", sellerHandler.Apply)

			me := sellers.Group("/me")
			me.Use(middleware.SellerRequired())
			{
				me.GET("/products", sellerHandler.ListProducts)
				me.POST("/products", sellerHandler.CreateProduct)
				me.GET("/products/:slug", sellerHandler.GetProduct)
				me.PUT("/products/:slug", sellerHandler.UpdateProduct)
				me.DELETE("/products/:slug", sellerHandler.DeleteProduct)
				me.POST("/products/:slug/images", sellerHandler.UploadProductImages)

				me.GET("/orders", sellerHandler.ListOrders)
				me.GET("/orders/:tx_ref/items", sellerHandler.ListOrderItems)
			}
		}

		// OptionalAuth lets the request logger and audit trail attribute
		// public browsing to a user when a token is present, without
		// gating any of the public routes.
		shop := v1.Group("/shop")
		shop.Use(middleware.OptionalAuth())
		{
			shop.GET("/categories", shopHandler.ListCategories)
			shop.POST("/categories", middleware.AuthRequired(), middleware.AdminRequired(), shopHandler.CreateCategory)
			shop.GET("/categories/:slug/products", shopHandler.ProductsByCategory)

			shop.GET("/products", shopHandler.ListProducts)
			shop.GET("/products/:slug", shopHandler.GetProduct)

			shop.GET("/products/:slug/reviews", shopHandler.ListReviews)
			shop.POST("/products/:slug/reviews", middleware.AuthRequired(), shopHandler.CreateReview)
			shop.GET("/products/:slug/reviews/me", middleware.AuthRequired(), shopHandler.GetOwnReview)
			shop.PUT("/products/:slug/reviews/me", middleware.AuthRequired(), shopHandler.UpdateOwnReview)
			shop.DELETE("/products/:slug/reviews/me", middleware.AuthRequired(), shopHandler.DeleteOwnReview)

			shop.GET("/sellers/:slug/products", shopHandler.ProductsBySeller)

			cart := shop.Group("")
			cart.Use(middleware.AuthRequired())
			{
				cart.GET("/cart", cartHandler.ListCart)
				cart.POST("/cart", cartHandler.ToggleCartItem)
				cart.POST("/checkout", cartHandler.Checkout)
			}
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.DELETE("/products/:slug", sellerHandler.HardDeleteProduct)
		}
	}

	return r, nil
}
