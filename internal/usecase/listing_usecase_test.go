package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienduca/internal/domain/entity"
	"tienduca/internal/domain/repository"
	"tienduca/pkg/errors"
)

// fakeListingRepo is an in-memory ListingRepository honoring the same
// ordering and cursor contract as the Firestore adapter.
type fakeListingRepo struct {
	listings    map[string]map[string]*entity.Listing
	seq         int
	createCalls int
	updateCalls int
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{
		listings: make(map[string]map[string]*entity.Listing),
	}
}

func (r *fakeListingRepo) owner(ownerID string) map[string]*entity.Listing {
	if r.listings[ownerID] == nil {
		r.listings[ownerID] = make(map[string]*entity.Listing)
	}
	return r.listings[ownerID]
}

func (r *fakeListingRepo) Create(ctx context.Context, ownerID string, listing *entity.Listing) error {
	r.createCalls++
	r.seq++
	if listing.ID == "" {
		listing.ID = fmt.Sprintf("listing-%d", r.seq)
	}
	listing.OwnerID = ownerID
	listing.CreatedAt = time.Unix(0, int64(r.seq)*int64(time.Second))
	clone := *listing
	r.owner(ownerID)[listing.ID] = &clone
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Listing, error) {
	listing, ok := r.owner(ownerID)[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	clone := *listing
	return &clone, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, ownerID string, listing *entity.Listing) error {
	r.updateCalls++
	clone := *listing
	r.owner(ownerID)[listing.ID] = &clone
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, ownerID, id string) error {
	delete(r.owner(ownerID), id)
	return nil
}

func fakeDocPath(listing *entity.Listing) string {
	return fmt.Sprintf("users/%s/listings/%s", listing.OwnerID, listing.ID)
}

func (r *fakeListingRepo) all() []*entity.Listing {
	var result []*entity.Listing
	for _, byID := range r.listings {
		for _, listing := range byID {
			result = append(result, listing)
		}
	}
	// createdAt desc with the document path as the tie-break, matching
	// the store's ordering.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return fakeDocPath(result[i]) > fakeDocPath(result[j])
	})
	return result
}

func (r *fakeListingRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	var result []*entity.Listing
	for _, listing := range r.all() {
		if listing.OwnerID == ownerID {
			result = append(result, listing)
		}
	}
	return result, nil
}

func (r *fakeListingRepo) Browse(ctx context.Context, category string, cursor *repository.BrowseCursor, pageSize int) ([]*entity.Listing, *repository.BrowseCursor, bool, error) {
	var matched []*entity.Listing
	for _, listing := range r.all() {
		if category != "" && category != entity.CategoryAll && listing.Category != category {
			continue
		}
		if cursor != nil {
			after := listing.CreatedAt.Before(cursor.CreatedAt) ||
				(listing.CreatedAt.Equal(cursor.CreatedAt) && fakeDocPath(listing) < cursor.LastRef)
			if !after {
				continue
			}
		}
		matched = append(matched, listing)
	}

	hasMore := len(matched) > pageSize
	if !hasMore {
		return matched, nil, false, nil
	}
	matched = matched[:pageSize]
	last := matched[pageSize-1]
	next := &repository.BrowseCursor{CreatedAt: last.CreatedAt, LastRef: fakeDocPath(last)}
	return matched, next, true, nil
}

func (r *fakeListingRepo) insert(ownerID, id string, createdAt time.Time, category string) {
	r.owner(ownerID)[id] = &entity.Listing{
		ID:        id,
		OwnerID:   ownerID,
		Category:  category,
		CreatedAt: createdAt,
	}
}

type fakeFileService struct {
	uploads []string
	deleted []string
	failErr error
}

func (f *fakeFileService) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	url := fmt.Sprintf("https://storage.example.com/%s/object-%d.jpg", folder, len(f.uploads)+1)
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeFileService) Close() error { return nil }

func validInput() ListingInput {
	return ListingInput{
		Name:         "Pastelería Dulce Flor",
		Category:     "Pastelería",
		Description:  "Tortas, cupcakes y más.",
		ContactPhone: "011-15-1234567",
	}
}

func TestCreateListingValidation(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewListingUseCase(repo, &fakeFileService{})

	for _, tt := range []struct {
		name   string
		mutate func(*ListingInput)
	}{
		{"empty name", func(in *ListingInput) { in.Name = "" }},
		{"whitespace name", func(in *ListingInput) { in.Name = "   " }},
		{"empty category", func(in *ListingInput) { in.Category = "" }},
		{"empty description", func(in *ListingInput) { in.Description = "" }},
		{"empty contact", func(in *ListingInput) { in.ContactPhone = "" }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := uc.Create(context.Background(), "user-1", input, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, "BAD_REQUEST"))
		})
	}

	// Validation failures must never reach the write.
	assert.Equal(t, 0, repo.createCalls)
}

func TestCreateListingNormalizesPhone(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewListingUseCase(repo, &fakeFileService{})

	listing, err := uc.Create(context.Background(), "user-1", validInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, "5411151234567", listing.ContactPhone)
}

func TestCreateListingUploadFailureAborts(t *testing.T) {
	repo := newFakeListingRepo()
	files := &fakeFileService{failErr: fmt.Errorf("bucket unavailable")}
	uc := NewListingUseCase(repo, files)

	image := &ImageUpload{Reader: strings.NewReader("fake image"), ContentType: "image/jpeg"}
	_, err := uc.Create(context.Background(), "user-1", validInput(), image)

	require.Error(t, err)
	assert.Equal(t, 0, repo.createCalls, "no partial write after a failed upload")
}

func TestCreateListingWithImage(t *testing.T) {
	repo := newFakeListingRepo()
	files := &fakeFileService{}
	uc := NewListingUseCase(repo, files)

	image := &ImageUpload{Reader: strings.NewReader("fake image"), ContentType: "image/jpeg"}
	listing, err := uc.Create(context.Background(), "user-1", validInput(), image)

	require.NoError(t, err)
	require.Len(t, files.uploads, 1)
	assert.Equal(t, files.uploads[0], listing.ImageURL)
}

func TestUpdateListingPreservesIdentity(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewListingUseCase(repo, &fakeFileService{})

	created, err := uc.Create(context.Background(), "user-1", validInput(), nil)
	require.NoError(t, err)

	input := validInput()
	input.Name = "Dulce Flor Renovada"
	input.Category = "Comida casera"

	updated, err := uc.Update(context.Background(), "user-1", created.ID, input, nil)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt), "creation time survives edits")
	assert.Equal(t, "Dulce Flor Renovada", updated.Name)
	assert.Equal(t, "Comida casera", updated.Category)
}

func TestUpdateListingRejectsNonOwner(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewListingUseCase(repo, &fakeFileService{})

	created, err := uc.Create(context.Background(), "user-1", validInput(), nil)
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), "user-2", created.ID, validInput(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Equal(t, 0, repo.updateCalls)
}

func TestDeleteListing(t *testing.T) {
	repo := newFakeListingRepo()
	files := &fakeFileService{}
	uc := NewListingUseCase(repo, files)

	image := &ImageUpload{Reader: strings.NewReader("fake image"), ContentType: "image/png"}
	mine, err := uc.Create(context.Background(), "user-1", validInput(), image)
	require.NoError(t, err)
	theirs, err := uc.Create(context.Background(), "user-2", validInput(), nil)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "user-1", mine.ID))

	remaining, err := uc.ListMine(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// The other owner's listing is untouched.
	others, err := uc.ListMine(context.Background(), "user-2")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, theirs.ID, others[0].ID)

	// The orphaned image is cleaned up.
	assert.Equal(t, []string{mine.ImageURL}, files.deleted)
}

func TestDeleteListingRejectsNonOwner(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewListingUseCase(repo, &fakeFileService{})

	created, err := uc.Create(context.Background(), "user-1", validInput(), nil)
	require.NoError(t, err)

	err = uc.Delete(context.Background(), "user-2", created.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestBrowseCursorChaining(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewListingUseCase(repo, &fakeFileService{})

	for i := 0; i < 15; i++ {
		owner := fmt.Sprintf("user-%d", i%3)
		input := validInput()
		input.Name = fmt.Sprintf("Negocio %d", i)
		_, err := uc.Create(context.Background(), owner, input, nil)
		require.NoError(t, err)
	}

	first, cursor, hasMore, err := uc.Browse(context.Background(), entity.CategoryAll, "", 12)
	require.NoError(t, err)
	assert.Len(t, first, 12)
	assert.True(t, hasMore)
	require.NotEmpty(t, cursor)

	second, _, hasMore, err := uc.Browse(context.Background(), entity.CategoryAll, cursor, 12)
	require.NoError(t, err)
	assert.Len(t, second, 3)
	assert.False(t, hasMore)

	all := append(append([]*entity.Listing{}, first...), second...)
	seen := make(map[string]bool)
	for i, listing := range all {
		assert.False(t, seen[listing.ID], "duplicate id %s", listing.ID)
		seen[listing.ID] = true
		if i > 0 {
			assert.True(t, all[i-1].CreatedAt.After(listing.CreatedAt),
				"createdAt must strictly decrease across pages")
		}
	}
}

func TestBrowseTiedTimestampsAcrossPages(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewListingUseCase(repo, &fakeFileService{})

	// Five listings share one timestamp and the page boundary falls
	// inside the tie; the path tie-break must neither skip nor repeat
	// any of them.
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		repo.insert(fmt.Sprintf("user-%d", i), fmt.Sprintf("tied-%d", i), ts, "Pastelería")
	}
	repo.insert("user-9", "older", ts.Add(-time.Minute), "Pastelería")

	seen := make(map[string]int)
	cursor := ""
	for pages := 0; pages < 4; pages++ {
		listings, next, hasMore, err := uc.Browse(context.Background(), entity.CategoryAll, cursor, 3)
		require.NoError(t, err)
		for _, listing := range listings {
			seen[listing.ID]++
		}
		if !hasMore {
			assert.Empty(t, next)
			break
		}
		require.NotEmpty(t, next)
		cursor = next
	}

	require.Len(t, seen, 6)
	for id, count := range seen {
		assert.Equal(t, 1, count, "listing %s appeared %d times", id, count)
	}
}

func TestBrowseCategoryFilter(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewListingUseCase(repo, &fakeFileService{})

	for i := 0; i < 6; i++ {
		input := validInput()
		if i%2 == 0 {
			input.Category = "Tecnología"
		}
		_, err := uc.Create(context.Background(), "user-1", input, nil)
		require.NoError(t, err)
	}

	listings, _, hasMore, err := uc.Browse(context.Background(), "Tecnología", "", 12)
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, listings, 3)
	for _, listing := range listings {
		assert.Equal(t, "Tecnología", listing.Category)
	}
}

func TestBrowseExactPageBoundary(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewListingUseCase(repo, &fakeFileService{})

	for i := 0; i < 12; i++ {
		_, err := uc.Create(context.Background(), "user-1", validInput(), nil)
		require.NoError(t, err)
	}

	listings, cursor, hasMore, err := uc.Browse(context.Background(), entity.CategoryAll, "", 12)
	require.NoError(t, err)
	assert.Len(t, listings, 12)
	assert.False(t, hasMore, "a full page with nothing behind it reports no more")
	assert.Empty(t, cursor)
}

func TestFilterByCategory(t *testing.T) {
	listings := []*entity.Listing{
		{ID: "a", Category: "Pastelería"},
		{ID: "b", Category: "Tecnología"},
		{ID: "c", Category: "Pastelería"},
	}

	filtered := FilterByCategory(listings, "Pastelería")
	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)

	assert.Len(t, FilterByCategory(listings, entity.CategoryAll), 3)
	assert.Len(t, FilterByCategory(listings, ""), 3)
	assert.Empty(t, FilterByCategory(listings, "Lencería"))
}
