package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"tienduca/internal/usecase"
	"tienduca/pkg/errors"
	"tienduca/pkg/response"
	"tienduca/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type listingRequest struct {
	Name         string `json:"name" form:"name" validate:"required"`
	Category     string `json:"category" form:"category" validate:"required"`
	Description  string `json:"description" form:"description" validate:"required"`
	ContactPhone string `json:"contact_phone" form:"contact_phone" validate:"required"`
	Instagram    string `json:"instagram" form:"instagram" validate:"omitempty,url"`
	Facebook     string `json:"facebook" form:"facebook" validate:"omitempty,url"`
	TikTok       string `json:"tiktok" form:"tiktok" validate:"omitempty,url"`
	Website      string `json:"website" form:"website" validate:"omitempty,url"`
	ImageURL     string `json:"image_url" form:"image_url" validate:"omitempty,url"`
	Location     string `json:"location" form:"location"`
}

func (r listingRequest) toInput() usecase.ListingInput {
	return usecase.ListingInput{
		Name:         r.Name,
		Category:     r.Category,
		Description:  r.Description,
		ContactPhone: r.ContactPhone,
		Instagram:    r.Instagram,
		Facebook:     r.Facebook,
		TikTok:       r.TikTok,
		Website:      r.Website,
		ImageURL:     r.ImageURL,
		Location:     r.Location,
	}
}

// bindListingRequest accepts either a JSON body or a multipart form.
// The multipart form may carry an image file that is uploaded as part
// of the same submission.
func (h *ListingHandler) bindListingRequest(c echo.Context) (*listingRequest, *usecase.ImageUpload, func(), error) {
	var req listingRequest
	if err := c.Bind(&req); err != nil {
		return nil, nil, nil, errors.BadRequest("Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {}
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return &req, nil, cleanup, nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		// No image chosen; the field is optional.
		return &req, nil, cleanup, nil
	}

	if file.Size > maxImageSize {
		return nil, nil, nil, errors.BadRequest("Image exceeds the 5MB limit", nil)
	}
	fileType := file.Header.Get("Content-Type")
	if !isAllowedImageType(fileType) {
		return nil, nil, nil, errors.BadRequest("Image type not supported", nil)
	}

	src, err := file.Open()
	if err != nil {
		return nil, nil, nil, errors.Internal("Unable to read image", err)
	}

	return &req, &usecase.ImageUpload{Reader: src, ContentType: fileType}, func() { src.Close() }, nil
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	req, image, cleanup, err := h.bindListingRequest(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer cleanup()

	ownerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.Create(c.Request().Context(), ownerID, req.toInput(), image)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	id := c.Param("id")

	req, image, cleanup, err := h.bindListingRequest(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer cleanup()

	ownerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.Update(c.Request().Context(), ownerID, id, req.toInput(), image)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	id := c.Param("id")
	ownerID := c.Get("uid").(string)

	if err := h.listingUseCase.Delete(c.Request().Context(), ownerID, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing deleted successfully",
	})
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	listings, err := h.listingUseCase.ListMine(c.Request().Context(), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) BrowseListings(c echo.Context) error {
	params := utils.GetBrowseParams(c)

	listings, nextCursor, hasMore, err := h.listingUseCase.Browse(
		c.Request().Context(),
		params.Category,
		params.Cursor,
		params.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Page(c, listings, nextCursor, hasMore)
}

func (h *ListingHandler) ListCategories(c echo.Context) error {
	return response.Success(c, h.listingUseCase.Categories())
}
