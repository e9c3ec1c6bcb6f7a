// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/handlers"
	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/services"
)

type routeHandlers struct {
	collections *handlers.CollectionHandler
	products    *handlers.ProductHandler
	reviews     *handlers.ReviewHandler
	carts       *handlers.CartHandler
	cartItems   *handlers.CartItemHandler
}

func Initialize(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *gin.Engine {
	// Initialize services
	collectionService := services.NewCollectionService(db)
	productService := services.NewProductService(db)
	reviewService := services.NewReviewService(db)
	cartService := services.NewCartService(db)

	// Initialize handlers
	h := routeHandlers{
		collections: handlers.NewCollectionHandler(collectionService),
		products:    handlers.NewProductHandler(productService, cfg.Catalog),
		reviews:     handlers.NewReviewHandler(reviewService),
		carts:       handlers.NewCartHandler(cartService),
		cartItems:   handlers.NewCartItemHandler(cartService),
	}

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(middleware.RateLimit(cfg.RateLimit))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})

	registerRoutes(r.Group(""), h)
	registerRoutes(r.Group("/v1"), h)

	return r
}

func registerRoutes(api *gin.RouterGroup, h routeHandlers) {
	// Collection routes
	collections := api.Group("/collections")
	{
		collections.GET("", h.collections.GetCollections)
		collections.POST("", h.collections.CreateCollection)
		collections.GET("/:id", h.collections.GetCollection)
		collections.PUT("/:id", h.collections.UpdateCollection)
		collections.DELETE("/:id", h.collections.DeleteCollection)
	}

	// Product routes
	products := api.Group("/products")
	{
		products.GET("", h.products.GetProducts)
		products.POST("", h.products.CreateProduct)
		products.GET("/:id", h.products.GetProduct)
		products.PUT("/:id", h.products.UpdateProduct)
		products.DELETE("/:id", h.products.DeleteProduct)

		// Reviews are always scoped by product
		products.GET("/:id/reviews", h.reviews.GetReviews)
		products.POST("/:id/reviews", h.reviews.CreateReview)
		products.GET("/:id/reviews/:review_id", h.reviews.GetReview)
		products.PUT("/:id/reviews/:review_id", h.reviews.UpdateReview)
		products.DELETE("/:id/reviews/:review_id", h.reviews.DeleteReview)
	}

	// Cart routes
	carts := api.Group("/carts")
	{
		carts.POST("", h.carts.CreateCart)
		carts.GET("/:id", h.carts.GetCart)
		carts.DELETE("/:id", h.carts.DeleteCart)

		carts.GET("/:id/items", h.cartItems.GetItems)
		carts.POST("/:id/items", h.cartItems.AddItem)
		carts.GET("/:id/items/:item_id", h.cartItems.GetItem)
		carts.PATCH("/:id/items/:item_id", h.cartItems.UpdateItem)
		carts.DELETE("/:id/items/:item_id", h.cartItems.DeleteItem)
	}
}
