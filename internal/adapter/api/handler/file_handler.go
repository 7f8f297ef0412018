package handler

import (
	"github.com/labstack/echo/v4"

	"tienduca/internal/domain/service"
	"tienduca/pkg/errors"
	"tienduca/pkg/logger"
	"tienduca/pkg/response"
)

const maxImageSize = 5 * 1024 * 1024

func isAllowedImageType(fileType string) bool {
	switch fileType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

type FileHandler struct {
	fileService service.FileUploadService
}

func NewFileHandler(fileService service.FileUploadService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// UploadImage stores a listing image and returns its public URL, for
// clients that upload before submitting the listing form.
func (h *FileHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > maxImageSize {
		logger.Warn("Upload rejected, %d bytes exceeds limit", file.Size)
		return response.Error(c, errors.BadRequest("Image exceeds the 5MB limit", nil))
	}

	fileType := file.Header.Get("Content-Type")
	if !isAllowedImageType(fileType) {
		return response.Error(c, errors.BadRequest("Image type not supported", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	url, err := h.fileService.UploadFile(c.Request().Context(), src, fileType, "listings")
	if err != nil {
		logger.Error("Upload failed: %v", err)
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}
