package router

import (
	"github.com/labstack/echo/v4"

	"tienduca/internal/adapter/api/handler"
	"tienduca/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	listingHandler := handler.GetListingHandler()

	// Public browse; a token only personalizes, it is never required.
	listings := e.Group("/v1/listings")
	listings.Use(authMiddleware.OptionalAuthenticate)
	listings.GET("", listingHandler.BrowseListings)

	e.GET("/v1/categories", listingHandler.ListCategories)

	myListings := e.Group("/v1/my-listings")
	myListings.Use(authMiddleware.Authenticate)
	myListings.GET("", listingHandler.ListMyListings)
	myListings.POST("", listingHandler.CreateListing, rateLimitMiddleware.Limit("write_listing"))
	myListings.PUT("/:id", listingHandler.UpdateListing, rateLimitMiddleware.Limit("write_listing"))
	myListings.DELETE("/:id", listingHandler.DeleteListing)
}
