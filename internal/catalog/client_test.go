package catalog

import (
	"testing"

	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	_, err := NewClient(nil, nil)
	assert.Error(t, err)

	cfg := config.DefaultConfig()
	_, err = NewClient(cfg, nil)
	assert.ErrorContains(t, err, "API key")

	cfg.Catalog.APIKey = "key"
	client, err := NewClient(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestPosterURL(t *testing.T) {
	base := "https://image.tmdb.org/t/p/w500/"
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/dune.jpg",
		PosterURL(base, domain.Item{PosterPath: "/dune.jpg"}))
	assert.Equal(t, PlaceholderPoster, PosterURL(base, domain.Item{}))
}
