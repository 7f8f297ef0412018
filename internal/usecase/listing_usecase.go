package usecase

import (
	"context"
	"io"
	"strings"

	"tienduca/internal/domain/entity"
	"tienduca/internal/domain/repository"
	"tienduca/internal/domain/service"
	"tienduca/pkg/errors"
	"tienduca/pkg/logger"
	"tienduca/pkg/utils"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	fileService service.FileUploadService
}

func NewListingUseCase(listingRepo repository.ListingRepository, fileService service.FileUploadService) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		fileService: fileService,
	}
}

type ListingInput struct {
	Name         string
	Category     string
	Description  string
	ContactPhone string
	Instagram    string
	Facebook     string
	TikTok       string
	Website      string
	ImageURL     string
	Location     string
}

// ImageUpload is an image chosen in the listing form, uploaded as part
// of the submission.
type ImageUpload struct {
	Reader      io.Reader
	ContentType string
}

func validateListingInput(input ListingInput) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return errors.BadRequest("Name is required", nil)
	case strings.TrimSpace(input.Category) == "":
		return errors.BadRequest("Category is required", nil)
	case strings.TrimSpace(input.Description) == "":
		return errors.BadRequest("Description is required", nil)
	case strings.TrimSpace(input.ContactPhone) == "":
		return errors.BadRequest("Contact phone is required", nil)
	}
	return nil
}

func (uc *ListingUseCase) Create(ctx context.Context, ownerID string, input ListingInput, image *ImageUpload) (*entity.Listing, error) {
	if err := validateListingInput(input); err != nil {
		return nil, err
	}

	imageURL := input.ImageURL
	if image != nil {
		// Upload before writing; a failed upload aborts the whole
		// submission rather than producing a listing without its image.
		url, err := uc.fileService.UploadFile(ctx, image.Reader, image.ContentType, "listings")
		if err != nil {
			return nil, errors.Internal("Failed to upload image", err)
		}
		imageURL = url
	}

	listing := &entity.Listing{
		Name:         strings.TrimSpace(input.Name),
		Category:     input.Category,
		Description:  strings.TrimSpace(input.Description),
		ContactPhone: utils.NormalizePhone(input.ContactPhone),
		Instagram:    input.Instagram,
		Facebook:     input.Facebook,
		TikTok:       input.TikTok,
		Website:      input.Website,
		ImageURL:     imageURL,
		Location:     input.Location,
	}

	if err := uc.listingRepo.Create(ctx, ownerID, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) Update(ctx context.Context, ownerID, id string, input ListingInput, image *ImageUpload) (*entity.Listing, error) {
	// Listings live under their owner's path, so a non-owner simply
	// does not find the document.
	existing, err := uc.listingRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := validateListingInput(input); err != nil {
		return nil, err
	}

	imageURL := input.ImageURL
	if image != nil {
		url, err := uc.fileService.UploadFile(ctx, image.Reader, image.ContentType, "listings")
		if err != nil {
			return nil, errors.Internal("Failed to upload image", err)
		}
		imageURL = url
	}

	// Edit re-submits the full field set; id and creation time survive.
	listing := &entity.Listing{
		ID:           existing.ID,
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(input.Name),
		Category:     input.Category,
		Description:  strings.TrimSpace(input.Description),
		ContactPhone: utils.NormalizePhone(input.ContactPhone),
		Instagram:    input.Instagram,
		Facebook:     input.Facebook,
		TikTok:       input.TikTok,
		Website:      input.Website,
		ImageURL:     imageURL,
		Location:     input.Location,
		CreatedAt:    existing.CreatedAt,
	}

	if err := uc.listingRepo.Update(ctx, ownerID, listing); err != nil {
		return nil, err
	}

	if image != nil && existing.ImageURL != "" && existing.ImageURL != listing.ImageURL {
		if err := uc.fileService.DeleteFile(ctx, existing.ImageURL); err != nil {
			logger.Warn("Failed to delete replaced image %s: %v", existing.ImageURL, err)
		}
	}

	return listing, nil
}

func (uc *ListingUseCase) Delete(ctx context.Context, ownerID, id string) error {
	existing, err := uc.listingRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := uc.listingRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	if existing.ImageURL != "" {
		if err := uc.fileService.DeleteFile(ctx, existing.ImageURL); err != nil {
			logger.Warn("Failed to delete image %s: %v", existing.ImageURL, err)
		}
	}

	return nil
}

func (uc *ListingUseCase) ListMine(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	return uc.listingRepo.ListByOwner(ctx, ownerID)
}

// Browse returns one page of the public directory, newest first. The
// cursor must come from a previous Browse with the same category.
func (uc *ListingUseCase) Browse(ctx context.Context, category, cursor string, pageSize int) ([]*entity.Listing, string, bool, error) {
	if pageSize <= 0 {
		pageSize = utils.DefaultPageSize
	}
	if category == "" {
		category = entity.CategoryAll
	}

	var browseCursor *repository.BrowseCursor
	if cursor != "" {
		createdAt, lastRef, err := utils.DecodeCursor(cursor)
		if err != nil {
			return nil, "", false, err
		}
		browseCursor = &repository.BrowseCursor{CreatedAt: createdAt, LastRef: lastRef}
	}

	listings, next, hasMore, err := uc.listingRepo.Browse(ctx, category, browseCursor, pageSize)
	if err != nil {
		return nil, "", false, err
	}

	nextCursor := ""
	if next != nil {
		nextCursor = utils.EncodeCursor(next.CreatedAt, next.LastRef)
	}

	return listings, nextCursor, hasMore, nil
}

// FilterByCategory narrows an in-memory slice without touching the
// store. entity.CategoryAll returns the input unchanged.
func FilterByCategory(listings []*entity.Listing, category string) []*entity.Listing {
	if category == "" || category == entity.CategoryAll {
		return listings
	}
	var filtered []*entity.Listing
	for _, listing := range listings {
		if listing.Category == category {
			filtered = append(filtered, listing)
		}
	}
	return filtered
}

func (uc *ListingUseCase) Categories() []string {
	return entity.Categories
}
