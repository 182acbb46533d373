package models

// Category identifies a curated catalog list
type Category string

// Catalog categories shown on the home feed
const (
	CategoryNowPlaying Category = "nowplaying"
	CategoryTrending   Category = "trending"
	CategoryPopular    Category = "popular"
	CategoryTopRated   Category = "toprated"
)

// HomeCategories lists the home feed rows in display order
var HomeCategories = []Category{
	CategoryNowPlaying,
	CategoryTrending,
	CategoryPopular,
	CategoryTopRated,
}

// Title returns the row heading for the category
func (c Category) Title() string {
	switch c {
	case CategoryNowPlaying:
		return "Now Playing"
	case CategoryTrending:
		return "Trending"
	case CategoryPopular:
		return "Popular"
	case CategoryTopRated:
		return "Top Rated"
	default:
		return string(c)
	}
}
