// Package pages assembles the home feed and the search page from the views
// and search packages.
package pages

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"discover/models"
	"discover/views"

	"golang.org/x/sync/errgroup"
)

// ErrUnknownRow is returned for a row key the feed does not have
var ErrUnknownRow = errors.New("unknown row")

// CategoryFetcher loads one curated catalog list
type CategoryFetcher interface {
	FetchCategory(ctx context.Context, category models.Category) ([]models.MediaItem, error)
}

// Home is the landing page: a hero carousel over Now Playing and one row per
// category. It is safe for concurrent use.
type Home struct {
	fetcher CategoryFetcher

	mu     sync.Mutex
	hero   *views.Carousel
	rows   map[models.Category]*views.Row
	loaded bool
}

// NewHome creates an empty home page
func NewHome(fetcher CategoryFetcher) *Home {
	h := &Home{fetcher: fetcher}
	h.setFeedLocked(nil)
	return h
}

// Load fetches every category concurrently. If any fetch fails the feed is
// left entirely empty and the error is returned.
func (h *Home) Load(ctx context.Context) error {
	results := make([][]models.MediaItem, len(models.HomeCategories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range models.HomeCategories {
		g.Go(func() error {
			items, err := h.fetcher.FetchCategory(gctx, category)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", category, err)
			}
			results[i] = items
			return nil
		})
	}
	err := g.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaded = true
	if err != nil {
		log.Printf("[home] Failed to load feed: %v", err)
		h.setFeedLocked(nil)
		return err
	}

	feed := make(map[models.Category][]models.MediaItem, len(results))
	for i, category := range models.HomeCategories {
		feed[category] = results[i]
	}
	h.setFeedLocked(feed)
	return nil
}

func (h *Home) setFeedLocked(feed map[models.Category][]models.MediaItem) {
	h.hero = views.NewCarousel(feed[models.CategoryNowPlaying])
	h.rows = make(map[models.Category]*views.Row, len(models.HomeCategories))
	for _, category := range models.HomeCategories {
		h.rows[category] = views.NewRow(category.Title(), feed[category])
	}
}

// NextHero advances the hero carousel
func (h *Home) NextHero() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hero.Next()
}

// PreviousHero moves the hero carousel back
func (h *Home) PreviousHero() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hero.Previous()
}

// JumpHero shows the hero at index
func (h *Home) JumpHero(index int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hero.JumpTo(index)
}

// WithRow runs fn against the row for category while holding the page lock
func (h *Home) WithRow(category models.Category, fn func(row *views.Row)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	row, ok := h.rows[category]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRow, category)
	}
	fn(row)
	return nil
}

// HomeRow is a rendered row tagged with its category
type HomeRow struct {
	Category models.Category `json:"category"`
	views.RowState
}

// HomeState is the rendered home page. Rows with nothing to show are omitted.
type HomeState struct {
	Loaded bool        `json:"loaded"`
	Hero   *views.Hero `json:"hero"`
	Rows   []HomeRow   `json:"rows"`
}

// State renders the page
func (h *Home) State() HomeState {
	h.mu.Lock()
	defer h.mu.Unlock()

	state := HomeState{
		Loaded: h.loaded,
		Hero:   h.hero.Hero(),
		Rows:   []HomeRow{},
	}
	for _, category := range models.HomeCategories {
		if rs := h.rows[category].State(); rs != nil {
			state.Rows = append(state.Rows, HomeRow{Category: category, RowState: *rs})
		}
	}
	return state
}
