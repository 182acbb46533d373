// Package models defines the data structures used throughout the application.
package models

import (
	"fmt"
)

// MediaKind represents the type of media content
type MediaKind string

// Media kind constants
const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "tv"
)

const (
	imageBaseURL = "https://image.tmdb.org/t/p"

	// PosterSize is used for cards and grid tiles
	PosterSize = "w500"
	// OriginalSize is used for the hero backdrop and the detail overlay
	OriginalSize = "original"

	// HeroPlaceholderURL is shown when a hero item has no backdrop
	HeroPlaceholderURL = "https://via.placeholder.com/1920x1080/000000/FFFFFF?text=No+Image"
)

// MediaItem represents a movie or series record as returned by the catalog
// and recommendation APIs. It is read-only once decoded.
type MediaItem struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title,omitempty"`
	Name         string   `json:"name,omitempty"`
	Overview     string   `json:"overview,omitempty"`
	PosterPath   string   `json:"poster_path,omitempty"`
	BackdropPath string   `json:"backdrop_path,omitempty"`
	ReleaseDate  string   `json:"release_date,omitempty"`
	FirstAirDate string   `json:"first_air_date,omitempty"`
	VoteAverage  *float64 `json:"vote_average,omitempty"`
}

// DisplayTitle returns the primary title, falling back to the series name
func (m MediaItem) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	if m.Name != "" {
		return m.Name
	}
	return "Untitled"
}

// Date returns the release date or first air date, empty when neither is set
func (m MediaItem) Date() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

// Kind infers movie vs. series from which title and date fields are populated
func (m MediaItem) Kind() MediaKind {
	if m.Title != "" || m.ReleaseDate != "" {
		return KindMovie
	}
	if m.Name != "" || m.FirstAirDate != "" {
		return KindSeries
	}
	return KindMovie
}

// HasPoster reports whether the item can be shown in a grid or row
func (m MediaItem) HasPoster() bool {
	return m.PosterPath != ""
}

// Rating returns the average rating, treating a missing rating as 0
func (m MediaItem) Rating() float64 {
	if m.VoteAverage == nil {
		return 0
	}
	return *m.VoteAverage
}

// Year returns the four digit year of Date, or "N/A"
func (m MediaItem) Year() string {
	date := m.Date()
	if len(date) < 4 {
		return "N/A"
	}
	return date[:4]
}

// RatingLabel formats the rating with one decimal, or "N/A" when missing or zero
func (m MediaItem) RatingLabel() string {
	if m.Rating() == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", m.Rating())
}

// PosterURL returns the poster image URL at the given size, empty without a poster
func (m MediaItem) PosterURL(size string) string {
	return ImageURL(m.PosterPath, size)
}

// BackdropURL returns the backdrop image URL at the given size, empty without a backdrop
func (m MediaItem) BackdropURL(size string) string {
	return ImageURL(m.BackdropPath, size)
}

// ImageURL builds a catalog image URL from a path such as "/abc.jpg"
func ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", imageBaseURL, size, path)
}

// WithPosters returns the items that have a poster, preserving order
func WithPosters(items []MediaItem) []MediaItem {
	filtered := make([]MediaItem, 0, len(items))
	for _, item := range items {
		if item.HasPoster() {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Cap returns at most n leading items
func Cap(items []MediaItem, n int) []MediaItem {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// Float is a helper for building optional ratings
func Float(v float64) *float64 {
	return &v
}
