package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tienduca/internal/domain/entity"
	"tienduca/internal/domain/repository"
	"tienduca/pkg/errors"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) ownerListings(ownerID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(ownerID).Collection("listings")
}

func docToListing(doc *firestore.DocumentSnapshot) (*entity.Listing, error) {
	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	listing.ID = doc.Ref.ID
	// Path is users/{ownerID}/listings/{id}, so the grandparent document
	// is the owner.
	if owner := doc.Ref.Parent.Parent; owner != nil {
		listing.OwnerID = owner.ID
	}
	return &listing, nil
}

func (r *firestoreListingRepository) Create(ctx context.Context, ownerID string, listing *entity.Listing) error {
	if listing.ID == "" {
		doc := r.ownerListings(ownerID).NewDoc()
		listing.ID = doc.ID
	}
	listing.OwnerID = ownerID

	// createdAt carries the serverTimestamp tag; the store fills it in.
	ref := r.ownerListings(ownerID).Doc(listing.ID)
	if _, err := ref.Set(ctx, listing); err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	// Read back to learn the server-assigned timestamp.
	doc, err := ref.Get(ctx)
	if err != nil {
		return errors.Internal("Failed to read back created listing", err)
	}
	created, err := docToListing(doc)
	if err != nil {
		return err
	}
	listing.CreatedAt = created.CreatedAt

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, ownerID, id string) (*entity.Listing, error) {
	doc, err := r.ownerListings(ownerID).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}
	return docToListing(doc)
}

func (r *firestoreListingRepository) Update(ctx context.Context, ownerID string, listing *entity.Listing) error {
	// Full overwrite; createdAt is non-zero here so the serverTimestamp
	// tag leaves it untouched and insertion order is preserved.
	_, err := r.ownerListings(ownerID).Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to update listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, ownerID, id string) error {
	_, err := r.ownerListings(ownerID).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	iter := r.ownerListings(ownerID).Query.OrderBy("createdAt", firestore.Desc).Documents(ctx)

	var listings []*entity.Listing
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate listings", err)
		}
		listing, err := docToListing(doc)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func (r *firestoreListingRepository) Browse(ctx context.Context, category string, cursor *repository.BrowseCursor, pageSize int) ([]*entity.Listing, *repository.BrowseCursor, bool, error) {
	query := r.client.CollectionGroup("listings").Query

	if category != "" && category != entity.CategoryAll {
		query = query.Where("category", "==", category)
	}

	// Secondary order on the document path keeps the page boundary
	// deterministic when two listings share a createdAt.
	query = query.
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)

	if cursor != nil {
		// DocumentID cursor values on a collection group query must be
		// the document's full path.
		query = query.StartAfter(cursor.CreatedAt, cursor.LastRef)
	}

	// Fetch one extra document so has-more is exact instead of the
	// count==pageSize guess.
	iter := query.Limit(pageSize + 1).Documents(ctx)

	var listings []*entity.Listing
	var paths []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, false, errors.Internal("Failed to browse listings", err)
		}
		listing, err := docToListing(doc)
		if err != nil {
			return nil, nil, false, err
		}
		listings = append(listings, listing)
		paths = append(paths, doc.Ref.Path)
	}

	hasMore := len(listings) > pageSize
	if !hasMore {
		return listings, nil, false, nil
	}

	listings = listings[:pageSize]
	last := listings[pageSize-1]
	next := &repository.BrowseCursor{
		CreatedAt: last.CreatedAt,
		LastRef:   paths[pageSize-1],
	}
	return listings, next, true, nil
}
