package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/arvella/stockroom/internal/api/handlers"
	"github.com/arvella/stockroom/internal/api/middleware"
	"github.com/arvella/stockroom/internal/service"
)

type Services struct {
	Purchases   *service.PurchaseService
	Orders      *service.OrderService
	Suggestions *service.SuggestionService
	Catalog     *service.CatalogService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Purchases != nil {
			listHandler := handlers.NewPurchaseListHandler(services.Purchases)
			cartGroup := apiGroup.Group("/purchase-list")
			cartGroup.Use(middleware.Session())
			{
				cartGroup.GET("", listHandler.GetCart)
				cartGroup.GET("/supplier/:supplier_id", listHandler.GetCartForSupplier)
				cartGroup.POST("/items", listHandler.AddItem)
				cartGroup.PUT("/items", listHandler.UpdateItem)
				cartGroup.DELETE("/items/:product_id", listHandler.RemoveItem)
				cartGroup.POST("/checkout/supplier", listHandler.CheckoutSupplier)
				cartGroup.POST("/checkout/all", listHandler.CheckoutAll)
			}
		}

		if services.Orders != nil {
			orderHandler := handlers.NewOrderHandler(services.Orders)
			orderGroup := apiGroup.Group("/orders")
			{
				orderGroup.GET("", orderHandler.ListOrders)
				orderGroup.GET("/:id", orderHandler.GetOrder)
				orderGroup.PATCH("/:id/status", orderHandler.UpdateStatus)
			}
		}

		if services.Suggestions != nil {
			suggestionHandler := handlers.NewSuggestionHandler(services.Suggestions)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.GET("/suggestions", suggestionHandler.GetSuggestions)
				inventoryGroup.GET("/stock", suggestionHandler.GetStock)
			}
		}

		if services.Catalog != nil {
			catalogHandler := handlers.NewCatalogHandler(services.Catalog)
			catalogGroup := apiGroup.Group("/catalog")
			{
				catalogGroup.GET("/products", catalogHandler.SearchProducts)
				catalogGroup.GET("/suppliers", catalogHandler.GetSuppliers)
				catalogGroup.GET("/stores", catalogHandler.GetStores)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
