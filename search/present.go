package search

import (
	"cmp"
	"slices"
	"strings"

	"discover/models"
)

// MaxCatalogResults caps the catalog grid after the poster filter
const MaxCatalogResults = 15

// Presented holds both result lists after filtering, capping and sorting
type Presented struct {
	Catalog         []models.MediaItem `json:"catalog"`
	Recommendations []models.MediaItem `json:"recommendations"`
}

// Present derives the displayed lists from a session. It never modifies s.
func Present(s Session, mode models.SortMode) Presented {
	catalog := models.Cap(models.WithPosters(s.CatalogResults), MaxCatalogResults)
	recommendations := models.WithPosters(s.Recommendations)
	return Presented{
		Catalog:         SortItems(catalog, mode),
		Recommendations: SortItems(recommendations, mode),
	}
}

// Present derives the displayed lists from the current session
func (a *Aggregator) Present(mode models.SortMode) Presented {
	return Present(a.Session(), mode)
}

// SortItems returns a sorted copy of items. Ties keep their input order.
//   - default: input order
//   - rating: highest first, missing rating counts as 0
//   - year: latest date string first, missing dates last
func SortItems(items []models.MediaItem, mode models.SortMode) []models.MediaItem {
	sorted := slices.Clone(items)
	if sorted == nil {
		sorted = []models.MediaItem{}
	}

	switch mode {
	case models.SortRating:
		slices.SortStableFunc(sorted, func(a, b models.MediaItem) int {
			return cmp.Compare(b.Rating(), a.Rating())
		})
	case models.SortYear:
		slices.SortStableFunc(sorted, func(a, b models.MediaItem) int {
			return strings.Compare(b.Date(), a.Date())
		})
	}
	return sorted
}

// SectionState is what a results section currently shows
type SectionState string

// Section states
const (
	SectionLoading SectionState = "loading"
	SectionFailed  SectionState = "failed"
	SectionResults SectionState = "results"
	SectionEmpty   SectionState = "empty"
)

// Section is one source's block on the results page
type Section struct {
	State   SectionState       `json:"state"`
	Message string             `json:"message,omitempty"`
	Count   int                `json:"count"`
	Items   []models.MediaItem `json:"items"`
}

// ResultsView is the full results page for a session
type ResultsView struct {
	Query        string         `json:"query"`
	Sort         models.SortMode `json:"sort"`
	ShowControls bool           `json:"show_controls"`
	Catalog      Section        `json:"catalog"`

	// The recommendations block is shown while loading or when it has items;
	// its failure is a separate banner.
	ShowRecommendations bool    `json:"show_recommendations"`
	Recommendations     Section `json:"recommendations"`
	RecommendationError string  `json:"recommendation_error,omitempty"`
}

// View builds the results page for a session
func View(s Session, mode models.SortMode) ResultsView {
	presented := Present(s, mode)

	view := ResultsView{
		Query:           s.Query,
		Sort:            mode,
		Catalog:         section(s.CatalogStatus, presented.Catalog),
		Recommendations: section(s.RecommendationStatus, presented.Recommendations),
	}
	recommendLoading := s.RecommendationStatus.Loading()
	view.ShowControls = len(presented.Catalog) > 0 || len(presented.Recommendations) > 0 || recommendLoading
	view.ShowRecommendations = recommendLoading || len(presented.Recommendations) > 0
	if s.RecommendationStatus.Failed() {
		view.RecommendationError = s.RecommendationStatus.Message
	}
	return view
}

// View builds the results page for the current session
func (a *Aggregator) View(mode models.SortMode) ResultsView {
	return View(a.Session(), mode)
}

func section(status models.Status, items []models.MediaItem) Section {
	s := Section{Count: len(items), Items: items}
	switch {
	case status.Loading():
		s.State = SectionLoading
		s.Items = []models.MediaItem{}
		s.Count = 0
	case status.Failed():
		s.State = SectionFailed
		s.Message = status.Message
	case len(items) > 0:
		s.State = SectionResults
	default:
		s.State = SectionEmpty
	}
	return s
}
