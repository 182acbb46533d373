package views

import (
	"context"
	"fmt"
	"log"
	"sync"

	"discover/models"
)

// TrailerFetcher looks up the trailer key for an item; "" means no trailer
type TrailerFetcher interface {
	FetchTrailerKey(ctx context.Context, itemID int64) (string, error)
}

// TaskRunner launches tracked goroutines
type TaskRunner interface {
	Go(ctx context.Context, name string, fn func(ctx context.Context)) bool
}

// Overlay is the detail modal for one item: vote, watchlist and trailer popup.
// None of its state leaves the process.
type Overlay struct {
	fetcher TrailerFetcher
	tasks   TaskRunner

	mu         sync.Mutex
	item       models.MediaItem
	vote       models.VoteState
	watchlist  bool
	trailer    models.TrailerState
	generation uint64
	cancel     context.CancelFunc
}

// NewOverlay opens the overlay on item
func NewOverlay(item models.MediaItem, fetcher TrailerFetcher, tasks TaskRunner) *Overlay {
	return &Overlay{
		fetcher: fetcher,
		tasks:   tasks,
		item:    item,
		vote:    models.VoteNone,
		trailer: models.TrailerState{Phase: models.TrailerClosed},
	}
}

// SetItem points the overlay at another item, discarding vote, watchlist and trailer state
func (o *Overlay) SetItem(item models.MediaItem) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.resetTrailerLocked()
	o.item = item
	o.vote = models.VoteNone
	o.watchlist = false
}

// Vote applies an up or down choice. Choosing the active vote clears it;
// choosing the other one replaces it.
func (o *Overlay) Vote(choice models.VoteState) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch {
	case choice != models.VoteUp && choice != models.VoteDown:
		o.vote = models.VoteNone
	case o.vote == choice:
		o.vote = models.VoteNone
	default:
		o.vote = choice
	}
}

// ToggleWatchlist flips the watchlist flag
func (o *Overlay) ToggleWatchlist() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.watchlist = !o.watchlist
}

// PlayTrailer opens the trailer popup and starts the lookup. It only acts
// from the closed state, so at most one lookup is in flight; it reports
// whether a lookup was started.
func (o *Overlay) PlayTrailer() bool {
	o.mu.Lock()
	if o.trailer.Phase != models.TrailerClosed {
		o.mu.Unlock()
		return false
	}
	o.generation++
	generation := o.generation
	itemID := o.item.ID
	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel
	o.trailer = models.TrailerState{Phase: models.TrailerOpening}
	o.mu.Unlock()

	started := o.tasks.Go(ctx, fmt.Sprintf("trailer lookup for %d", itemID), func(ctx context.Context) {
		key, err := o.fetcher.FetchTrailerKey(ctx, itemID)
		if err != nil {
			log.Printf("Failed to fetch trailer for %d: %v", itemID, err)
		}
		o.completeTrailer(generation, key, err)
	})
	if !started {
		o.completeTrailer(generation, "", context.Canceled)
	}
	return started
}

// CloseTrailer closes the popup from any state. A lookup still in flight is
// canceled and its result ignored.
func (o *Overlay) CloseTrailer() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resetTrailerLocked()
}

// Close releases the overlay
func (o *Overlay) Close() {
	o.CloseTrailer()
}

func (o *Overlay) completeTrailer(generation uint64, key string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if generation != o.generation || o.trailer.Phase != models.TrailerOpening {
		return
	}
	if err != nil || key == "" {
		o.trailer = models.TrailerState{Phase: models.TrailerUnavailable}
	} else {
		o.trailer = models.TrailerState{Phase: models.TrailerReady, Key: key}
	}
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

func (o *Overlay) resetTrailerLocked() {
	o.generation++
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.trailer = models.TrailerState{Phase: models.TrailerClosed}
}

// OverlayState is the rendered overlay
type OverlayState struct {
	Item        models.MediaItem    `json:"item"`
	Title       string              `json:"title"`
	ReleaseDate string              `json:"release_date"`
	Stars       string              `json:"stars"`
	ImageURL    string              `json:"image_url,omitempty"`
	Overview    string              `json:"overview"`
	Vote        models.VoteState    `json:"vote"`
	InWatchlist bool                `json:"in_watchlist"`
	Trailer     models.TrailerState `json:"trailer"`
	EmbedURL    string              `json:"embed_url,omitempty"`
}

// State renders the overlay
func (o *Overlay) State() OverlayState {
	o.mu.Lock()
	defer o.mu.Unlock()

	item := o.item
	state := OverlayState{
		Item:        item,
		Title:       item.DisplayTitle(),
		ReleaseDate: item.Date(),
		Stars:       "N/A",
		Overview:    item.Overview,
		Vote:        o.vote,
		InWatchlist: o.watchlist,
		Trailer:     o.trailer,
	}
	if state.ReleaseDate == "" {
		state.ReleaseDate = "Unknown"
	}
	if item.Rating() > 0 {
		state.Stars = fmt.Sprintf("%.1f", item.Rating()/2)
	}
	if state.Overview == "" {
		state.Overview = "No description available."
	}
	if item.BackdropPath != "" {
		state.ImageURL = item.BackdropURL(models.OriginalSize)
	} else {
		state.ImageURL = item.PosterURL(models.OriginalSize)
	}
	if o.trailer.Phase == models.TrailerReady {
		state.EmbedURL = fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1", o.trailer.Key)
	}
	return state
}

// CurrentVote returns the current vote
func (o *Overlay) CurrentVote() models.VoteState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.vote
}

// Trailer returns the current trailer state
func (o *Overlay) Trailer() models.TrailerState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.trailer
}

// InWatchlist reports the watchlist flag
func (o *Overlay) InWatchlist() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.watchlist
}
