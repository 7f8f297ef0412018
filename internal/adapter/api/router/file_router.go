package router

import (
	"github.com/labstack/echo/v4"

	"tienduca/internal/adapter/api/handler"
	"tienduca/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	fileHandler := handler.GetFileHandler()

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)
	files.POST("/upload", fileHandler.UploadImage, rateLimitMiddleware.Limit("upload_image"))
}
