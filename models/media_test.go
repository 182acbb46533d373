package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaItem_Decode(t *testing.T) {
	body := `{"id": 1396, "name": "Breaking Bad", "first_air_date": "2008-01-20", "poster_path": "/bb.jpg", "vote_average": 8.9, "genre_ids": [18]}`

	var item MediaItem
	require.NoError(t, json.Unmarshal([]byte(body), &item))

	assert.Equal(t, int64(1396), item.ID)
	assert.Equal(t, "Breaking Bad", item.DisplayTitle())
	assert.Equal(t, KindSeries, item.Kind())
	assert.Equal(t, "2008", item.Year())
	assert.Equal(t, 8.9, item.Rating())
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/bb.jpg", item.PosterURL(PosterSize))
}

func TestMediaItem_Derived(t *testing.T) {
	tests := []struct {
		name       string
		item       MediaItem
		wantTitle  string
		wantKind   MediaKind
		wantDate   string
		wantYear   string
		wantRating string
	}{
		{
			name:       "movie",
			item:       MediaItem{Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: Float(7.9)},
			wantTitle:  "Heat",
			wantKind:   KindMovie,
			wantDate:   "1995-12-15",
			wantYear:   "1995",
			wantRating: "7.9",
		},
		{
			name:       "title wins over name",
			item:       MediaItem{Title: "A", Name: "B", FirstAirDate: "2010-01-01"},
			wantTitle:  "A",
			wantKind:   KindMovie,
			wantDate:   "2010-01-01",
			wantYear:   "2010",
			wantRating: "N/A",
		},
		{
			name:       "zero rating",
			item:       MediaItem{Name: "Pilot", VoteAverage: Float(0)},
			wantTitle:  "Pilot",
			wantKind:   KindSeries,
			wantYear:   "N/A",
			wantRating: "N/A",
		},
		{
			name:       "empty",
			item:       MediaItem{},
			wantTitle:  "Untitled",
			wantKind:   KindMovie,
			wantYear:   "N/A",
			wantRating: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTitle, tt.item.DisplayTitle())
			assert.Equal(t, tt.wantKind, tt.item.Kind())
			assert.Equal(t, tt.wantDate, tt.item.Date())
			assert.Equal(t, tt.wantYear, tt.item.Year())
			assert.Equal(t, tt.wantRating, tt.item.RatingLabel())
		})
	}
}

func TestWithPostersAndCap(t *testing.T) {
	items := []MediaItem{{ID: 1, PosterPath: "/a"}, {ID: 2}, {ID: 3, PosterPath: "/c"}, {ID: 4, PosterPath: "/d"}}

	filtered := WithPosters(items)
	assert.Len(t, filtered, 3)
	assert.Len(t, Cap(filtered, 2), 2)
	assert.Len(t, Cap(filtered, 10), 3)
	assert.NotNil(t, WithPosters(nil))
	assert.Empty(t, ImageURL("", OriginalSize))
}
