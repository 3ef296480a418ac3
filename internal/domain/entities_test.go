package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemRating(t *testing.T) {
	rating := 7.25
	rated := Item{ID: 1, Rating: &rating}
	unrated := Item{ID: 2}

	assert.True(t, rated.Rated())
	assert.Equal(t, "7.2/10", rated.FormattedRating())
	assert.False(t, unrated.Rated())
	assert.Equal(t, "unrated", unrated.FormattedRating())
}

func TestItemYear(t *testing.T) {
	assert.Equal(t, 2021, Item{ReleaseDate: "2021-10-22"}.Year())
	assert.Equal(t, 0, Item{}.Year())
	assert.Equal(t, 0, Item{ReleaseDate: "soon"}.Year())
	assert.Equal(t, "unrated", Item{}.Description())
	assert.Equal(t, "1984 · unrated", Item{ReleaseDate: "1984-12-14"}.Description())
}

func TestDetailTrailerURL(t *testing.T) {
	t.Run("prefers youtube trailer", func(t *testing.T) {
		d := &Detail{Videos: []Video{
			{Key: "teaser", Site: "YouTube", Type: "Teaser"},
			{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
			{Key: "trailer", Site: "YouTube", Type: "Trailer"},
		}}
		assert.Equal(t, "https://www.youtube.com/watch?v=trailer", d.TrailerURL())
	})

	t.Run("falls back to first video", func(t *testing.T) {
		d := &Detail{Videos: []Video{{Key: "clip", Site: "YouTube", Type: "Clip"}}}
		assert.Equal(t, "https://www.youtube.com/watch?v=clip", d.TrailerURL())
	})

	t.Run("no videos", func(t *testing.T) {
		var d *Detail
		assert.Empty(t, d.TrailerURL())
		assert.Empty(t, (&Detail{}).TrailerURL())
	})
}

func TestDetailFormattedRuntime(t *testing.T) {
	assert.Equal(t, "2h 35m", (&Detail{Runtime: 155}).FormattedRuntime())
	assert.Equal(t, "45m", (&Detail{Runtime: 45}).FormattedRuntime())
	assert.Empty(t, (&Detail{}).FormattedRuntime())
}
