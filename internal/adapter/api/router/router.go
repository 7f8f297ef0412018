package router

import (
	"github.com/labstack/echo/v4"

	"tienduca/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupListingRouter(e, authMiddleware, rateLimitMiddleware)
	SetupFileRouter(e, authMiddleware, rateLimitMiddleware)
	SetupHealthRouter(e)
}
