package search

import (
	"fmt"
	"testing"

	"discover/models"

	"github.com/stretchr/testify/assert"
)

func ratedItem(id int64, rating *float64) models.MediaItem {
	return models.MediaItem{ID: id, Title: fmt.Sprintf("Item %d", id), PosterPath: "/p.jpg", VoteAverage: rating}
}

func datedItem(id int64, releaseDate, firstAirDate string) models.MediaItem {
	return models.MediaItem{ID: id, PosterPath: "/p.jpg", ReleaseDate: releaseDate, FirstAirDate: firstAirDate}
}

func ids(list []models.MediaItem) []int64 {
	out := make([]int64, 0, len(list))
	for _, item := range list {
		out = append(out, item.ID)
	}
	return out
}

func TestSortItems_Rating(t *testing.T) {
	input := []models.MediaItem{
		ratedItem(1, models.Float(7.2)),
		ratedItem(2, nil),
		ratedItem(3, models.Float(9.0)),
		ratedItem(4, models.Float(5.5)),
	}

	sorted := SortItems(input, models.SortRating)
	assert.Equal(t, []int64{3, 1, 4, 2}, ids(sorted))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(input), "input must not be reordered")
}

func TestSortItems_RatingIsStable(t *testing.T) {
	input := []models.MediaItem{
		ratedItem(1, models.Float(6)),
		ratedItem(2, models.Float(8)),
		ratedItem(3, models.Float(6)),
		ratedItem(4, nil),
		ratedItem(5, models.Float(0)),
		ratedItem(6, models.Float(8)),
	}

	sorted := SortItems(input, models.SortRating)
	assert.Equal(t, []int64{2, 6, 1, 3, 4, 5}, ids(sorted))
}

func TestSortItems_Year(t *testing.T) {
	input := []models.MediaItem{
		datedItem(1, "1999-03-31", ""),
		datedItem(2, "", ""),
		datedItem(3, "", "2011-04-17"),
		datedItem(4, "2021-10-22", ""),
		datedItem(5, "1999-03-31", ""),
	}

	sorted := SortItems(input, models.SortYear)
	assert.Equal(t, []int64{4, 3, 1, 5, 2}, ids(sorted))
}

func TestSortItems_Default(t *testing.T) {
	input := []models.MediaItem{ratedItem(3, nil), ratedItem(1, models.Float(9)), ratedItem(2, nil)}
	assert.Equal(t, []int64{3, 1, 2}, ids(SortItems(input, models.SortDefault)))
	assert.Empty(t, SortItems(nil, models.SortRating))
}

func TestPresent_FiltersPostersAndCapsCatalog(t *testing.T) {
	var catalog []models.MediaItem
	for i := int64(1); i <= 30; i++ {
		item := ratedItem(i, nil)
		if i%3 == 0 {
			item.PosterPath = ""
		}
		catalog = append(catalog, item)
	}
	recommendations := []models.MediaItem{ratedItem(100, nil), {ID: 101, Title: "No poster"}}

	presented := Present(Session{CatalogResults: catalog, Recommendations: recommendations}, models.SortDefault)

	assert.Len(t, presented.Catalog, MaxCatalogResults)
	assert.Equal(t, []int64{1, 2, 4, 5, 7, 8, 10, 11, 13, 14, 16, 17, 19, 20, 22}, ids(presented.Catalog))
	assert.Equal(t, []int64{100}, ids(presented.Recommendations))
}

func TestPresent_CapAppliesBeforeSort(t *testing.T) {
	var catalog []models.MediaItem
	for i := int64(1); i <= 16; i++ {
		catalog = append(catalog, ratedItem(i, models.Float(float64(i))))
	}

	presented := Present(Session{CatalogResults: catalog}, models.SortRating)
	assert.Len(t, presented.Catalog, MaxCatalogResults)
	assert.Equal(t, int64(15), presented.Catalog[0].ID, "item 16 is cut before sorting")
}

func TestView_Sections(t *testing.T) {
	tests := []struct {
		name                string
		session             Session
		wantCatalog         SectionState
		wantRecommendations SectionState
		wantControls        bool
		wantShowRecommend   bool
	}{
		{
			name: "both loading",
			session: Session{
				CatalogStatus:        models.StatusLoading,
				RecommendationStatus: models.StatusLoading,
			},
			wantCatalog:         SectionLoading,
			wantRecommendations: SectionLoading,
			wantControls:        true,
			wantShowRecommend:   true,
		},
		{
			name: "catalog empty, recommendations done and empty",
			session: Session{
				CatalogStatus:        models.StatusSuccess,
				RecommendationStatus: models.StatusSuccess,
				CatalogResults:       []models.MediaItem{{ID: 1, Title: "No poster"}},
			},
			wantCatalog:         SectionEmpty,
			wantRecommendations: SectionEmpty,
			wantControls:        false,
			wantShowRecommend:   false,
		},
		{
			name: "catalog results, recommendations loading",
			session: Session{
				CatalogStatus:        models.StatusSuccess,
				RecommendationStatus: models.StatusLoading,
				CatalogResults:       []models.MediaItem{ratedItem(1, nil)},
			},
			wantCatalog:         SectionResults,
			wantRecommendations: SectionLoading,
			wantControls:        true,
			wantShowRecommend:   true,
		},
		{
			name: "catalog failed",
			session: Session{
				CatalogStatus:        models.StatusFailed(CatalogFailedMessage),
				RecommendationStatus: models.StatusSuccess,
			},
			wantCatalog:         SectionFailed,
			wantRecommendations: SectionEmpty,
			wantControls:        false,
			wantShowRecommend:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := View(tt.session, models.SortDefault)
			assert.Equal(t, tt.wantCatalog, view.Catalog.State)
			assert.Equal(t, tt.wantRecommendations, view.Recommendations.State)
			assert.Equal(t, tt.wantControls, view.ShowControls)
			assert.Equal(t, tt.wantShowRecommend, view.ShowRecommendations)
		})
	}
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, models.SortRating, models.ParseSortMode("rating"))
	assert.Equal(t, models.SortYear, models.ParseSortMode("year"))
	assert.Equal(t, models.SortDefault, models.ParseSortMode("default"))
	assert.Equal(t, models.SortDefault, models.ParseSortMode("popularity"))
	assert.Equal(t, models.SortDefault, models.ParseSortMode(""))
}
