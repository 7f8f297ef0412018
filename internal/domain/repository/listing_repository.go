package repository

import (
	"context"
	"time"

	"tienduca/internal/domain/entity"
)

// BrowseCursor marks the last item of the previous page. LastRef is the
// store's full document path, the tie-break when two listings share a
// createdAt. A cursor is only valid for the ordered, filtered result
// set it was produced by.
type BrowseCursor struct {
	CreatedAt time.Time
	LastRef   string
}

type ListingRepository interface {
	Create(ctx context.Context, ownerID string, listing *entity.Listing) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Listing, error)
	Update(ctx context.Context, ownerID string, listing *entity.Listing) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error)

	// Browse reads across all owners, newest first, optionally filtered
	// to one category (entity.CategoryAll disables the filter). It
	// returns up to pageSize listings, the cursor for the following
	// page (nil at the end of the list), and an exact has-more flag.
	Browse(ctx context.Context, category string, cursor *BrowseCursor, pageSize int) ([]*entity.Listing, *BrowseCursor, bool, error)
}
