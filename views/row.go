package views

import (
	"discover/models"
)

const (
	// MaxRowItems caps a row after the poster filter
	MaxRowItems = 20

	// scrollStep is the share of the viewport one arrow click moves
	scrollStep = 0.8
	// rightEdgeTolerance keeps the right arrow from flickering at the boundary
	rightEdgeTolerance = 10.0
)

// Row is a horizontally scrolling list of cards
type Row struct {
	Title string
	items []models.MediaItem

	offset      float64
	clientWidth float64
	scrollWidth float64

	canScrollLeft  bool
	canScrollRight bool
}

// NewRow keeps the items with a poster and caps them at MaxRowItems
func NewRow(title string, items []models.MediaItem) *Row {
	return &Row{
		Title: title,
		items: models.Cap(models.WithPosters(items), MaxRowItems),
	}
}

// Items returns the displayed items
func (r *Row) Items() []models.MediaItem {
	return r.items
}

// Visible reports whether the row renders at all
func (r *Row) Visible() bool {
	return len(r.items) > 0
}

// Resize records the container geometry after a layout or window resize
func (r *Row) Resize(clientWidth, scrollWidth float64) {
	r.clientWidth = clientWidth
	r.scrollWidth = scrollWidth
	r.offset = r.clamp(r.offset)
	r.recompute()
}

// OnScroll records a user-driven scroll position
func (r *Row) OnScroll(offset float64) {
	r.offset = r.clamp(offset)
	r.recompute()
}

// ScrollLeft moves the window left by 80% of the viewport
func (r *Row) ScrollLeft() {
	r.OnScroll(r.offset - r.clientWidth*scrollStep)
}

// ScrollRight moves the window right by 80% of the viewport
func (r *Row) ScrollRight() {
	r.OnScroll(r.offset + r.clientWidth*scrollStep)
}

// Offset returns the current scroll position
func (r *Row) Offset() float64 {
	return r.offset
}

// CanScrollLeft reports whether the left arrow is shown
func (r *Row) CanScrollLeft() bool {
	return r.canScrollLeft
}

// CanScrollRight reports whether the right arrow is shown
func (r *Row) CanScrollRight() bool {
	return r.canScrollRight
}

func (r *Row) maxOffset() float64 {
	return max(r.scrollWidth-r.clientWidth, 0)
}

// clamp mirrors the bounds a native scroll container enforces
func (r *Row) clamp(offset float64) float64 {
	return min(max(offset, 0), r.maxOffset())
}

func (r *Row) recompute() {
	r.canScrollLeft = r.offset > 0
	r.canScrollRight = r.offset < r.maxOffset()-rightEdgeTolerance
}

// RowState is the rendered row
type RowState struct {
	Title          string        `json:"title"`
	Items          []CardSummary `json:"items"`
	Offset         float64       `json:"offset"`
	CanScrollLeft  bool          `json:"can_scroll_left"`
	CanScrollRight bool          `json:"can_scroll_right"`
}

// State renders the row, or nil when it has nothing to show
func (r *Row) State() *RowState {
	if !r.Visible() {
		return nil
	}
	cards := make([]CardSummary, 0, len(r.items))
	for _, item := range r.items {
		cards = append(cards, NewCard(item).Summary())
	}
	return &RowState{
		Title:          r.Title,
		Items:          cards,
		Offset:         r.offset,
		CanScrollLeft:  r.canScrollLeft,
		CanScrollRight: r.canScrollRight,
	}
}
