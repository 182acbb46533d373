package views

import (
	"discover/models"
)

// Card is one poster tile. Hover and like are visual only.
type Card struct {
	item     models.MediaItem
	hovered  bool
	liked    bool
	onSelect func(models.MediaItem)
}

// NewCard creates a card for item
func NewCard(item models.MediaItem) *Card {
	return &Card{item: item}
}

// OnSelect registers the handler that receives the item when the card is clicked
func (c *Card) OnSelect(fn func(models.MediaItem)) {
	c.onSelect = fn
}

// Renderable reports whether the card has a poster to show
func (c *Card) Renderable() bool {
	return c.item.HasPoster()
}

// Hover sets the hover flag
func (c *Card) Hover(hovered bool) {
	c.hovered = hovered
}

// ToggleLike flips the like flag. It does not select the card.
func (c *Card) ToggleLike() {
	c.liked = !c.liked
}

// Select emits the item to the registered handler
func (c *Card) Select() {
	if c.onSelect != nil {
		c.onSelect(c.item)
	}
}

// Hovered reports the hover flag
func (c *Card) Hovered() bool { return c.hovered }

// Liked reports the like flag
func (c *Card) Liked() bool { return c.liked }

// CardSummary is the rendered card
type CardSummary struct {
	Item      models.MediaItem `json:"item"`
	Title     string           `json:"title"`
	Year      string           `json:"year"`
	Rating    string           `json:"rating"`
	PosterURL string           `json:"poster_url"`
	Hovered   bool             `json:"hovered"`
	Liked     bool             `json:"liked"`
}

// Summary renders the card
func (c *Card) Summary() CardSummary {
	return CardSummary{
		Item:      c.item,
		Title:     c.item.DisplayTitle(),
		Year:      c.item.Year(),
		Rating:    c.item.RatingLabel(),
		PosterURL: c.item.PosterURL(models.PosterSize),
		Hovered:   c.hovered,
		Liked:     c.liked,
	}
}
