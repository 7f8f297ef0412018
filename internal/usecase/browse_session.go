package usecase

import (
	"context"
	"sync"

	"tienduca/internal/domain/entity"
)

// ListingFetcher is the page-at-a-time read the session accumulates
// over. *ListingUseCase satisfies it.
type ListingFetcher interface {
	Browse(ctx context.Context, category, cursor string, pageSize int) ([]*entity.Listing, string, bool, error)
}

// BrowseSession accumulates pages for one viewer. Switching category
// resets the accumulated items and cursor and invalidates any fetch
// still in flight, so a slow page from the old category is discarded
// instead of appended after the new category's results.
type BrowseSession struct {
	fetcher  ListingFetcher
	pageSize int

	mu         sync.Mutex
	category   string
	items      []*entity.Listing
	cursor     string
	hasMore    bool
	generation int
	loading    bool
	cancel     context.CancelFunc
}

func NewBrowseSession(fetcher ListingFetcher, pageSize int) *BrowseSession {
	return &BrowseSession{
		fetcher:  fetcher,
		pageSize: pageSize,
		category: entity.CategoryAll,
		hasMore:  true,
	}
}

// SelectCategory transitions the selector and loads the first page of
// the new result set. A nil category id means the "Todos" state.
func (s *BrowseSession) SelectCategory(ctx context.Context, category string) ([]*entity.Listing, error) {
	if category == "" {
		category = entity.CategoryAll
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	gen := s.generation
	s.category = category
	s.items = nil
	s.cursor = ""
	s.hasMore = true
	s.loading = true
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	return s.fetch(fetchCtx, gen, category, "")
}

// LoadMore appends the next page. While a fetch is in flight, or when
// the end of the list was reached, it returns the current items
// unchanged.
func (s *BrowseSession) LoadMore(ctx context.Context) ([]*entity.Listing, error) {
	s.mu.Lock()
	if s.loading || !s.hasMore {
		items := s.items
		s.mu.Unlock()
		return items, nil
	}
	s.generation++
	gen := s.generation
	category := s.category
	cursor := s.cursor
	s.loading = true
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	return s.fetch(fetchCtx, gen, category, cursor)
}

func (s *BrowseSession) fetch(ctx context.Context, gen int, category, cursor string) ([]*entity.Listing, error) {
	page, nextCursor, hasMore, err := s.fetcher.Browse(ctx, category, cursor, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		// A newer selection superseded this fetch; its page must not
		// bleed into the current result set.
		return s.items, nil
	}
	s.loading = false
	s.cancel = nil

	if err != nil {
		return s.items, err
	}

	s.items = append(s.items, page...)
	s.cursor = nextCursor
	s.hasMore = hasMore
	return s.items, nil
}

func (s *BrowseSession) Items() []*entity.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

func (s *BrowseSession) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

func (s *BrowseSession) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}
