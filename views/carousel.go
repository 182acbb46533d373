// Package views holds the interaction state of the discovery UI components.
// Each type owns only its own transient state; catalog data is never modified.
package views

import (
	"discover/models"
)

// Carousel rotates through the hero items
type Carousel struct {
	items []models.MediaItem
	index int
}

// NewCarousel creates a carousel positioned on the first item
func NewCarousel(items []models.MediaItem) *Carousel {
	return &Carousel{items: items}
}

// Replace swaps the list and resets to the first item, even when the new
// list holds the same items
func (c *Carousel) Replace(items []models.MediaItem) {
	c.items = items
	c.index = 0
}

// Next advances one item, wrapping at the end. No-op with fewer than 2 items.
func (c *Carousel) Next() {
	if len(c.items) < 2 {
		return
	}
	c.index = (c.index + 1) % len(c.items)
}

// Previous goes back one item, wrapping at the start. No-op with fewer than 2 items.
func (c *Carousel) Previous() {
	if len(c.items) < 2 {
		return
	}
	c.index = (c.index - 1 + len(c.items)) % len(c.items)
}

// JumpTo selects item i. No-op when empty, already current, or out of range.
func (c *Carousel) JumpTo(i int) {
	if len(c.items) == 0 || i == c.index || i < 0 || i >= len(c.items) {
		return
	}
	c.index = i
}

// Index returns the current position
func (c *Carousel) Index() int {
	return c.index
}

// Len returns the number of items
func (c *Carousel) Len() int {
	return len(c.items)
}

// Current returns the item on display. ok is false when there is nothing to show.
func (c *Carousel) Current() (item models.MediaItem, ok bool) {
	if c == nil || len(c.items) == 0 || c.index < 0 || c.index >= len(c.items) {
		return models.MediaItem{}, false
	}
	return c.items[c.index], true
}

// Hero is the rendered hero banner
type Hero struct {
	Item        models.MediaItem `json:"item"`
	Title       string           `json:"title"`
	Overview    string           `json:"overview"`
	BackdropURL string           `json:"backdrop_url"`
	Index       int              `json:"index"`
	Count       int              `json:"count"`
	CanNavigate bool             `json:"can_navigate"`
}

// Hero renders the current item, or nil when the carousel shows nothing
func (c *Carousel) Hero() *Hero {
	item, ok := c.Current()
	if !ok {
		return nil
	}

	backdrop := item.BackdropURL(models.OriginalSize)
	if backdrop == "" {
		backdrop = models.HeroPlaceholderURL
	}
	overview := item.Overview
	if overview == "" {
		overview = "No description available."
	}

	return &Hero{
		Item:        item,
		Title:       item.DisplayTitle(),
		Overview:    overview,
		BackdropURL: backdrop,
		Index:       c.index,
		Count:       len(c.items),
		CanNavigate: len(c.items) > 1,
	}
}
