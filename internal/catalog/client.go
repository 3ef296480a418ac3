package catalog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/reel/internal/catalog/tmdb"
	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
)

// PlaceholderPoster is shown by display surfaces for items without a poster
const PlaceholderPoster = "assets/no-image.png"

// NewClient creates the remote catalog client from configuration.
// This factory function abstracts away the specific backend implementation.
func NewClient(cfg *config.Config, logger *slog.Logger) (domain.Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Catalog.BaseURL == "" {
		return nil, fmt.Errorf("catalog base URL is required")
	}

	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("catalog API key or access token is required")
	}

	return tmdb.NewClient(cfg.Catalog.BaseURL, tmdb.Options{
		APIKey:            cfg.Catalog.APIKey,
		AccessToken:       cfg.Catalog.AccessToken,
		Language:          cfg.Catalog.Language,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Timeout:           cfg.Catalog.Timeout,
	}, logger), nil
}

// PosterURL resolves an item's poster to a full image URL, or the placeholder
// when the item has none.
func PosterURL(imageBaseURL string, item domain.Item) string {
	if item.PosterPath == "" {
		return PlaceholderPoster
	}
	return strings.TrimRight(imageBaseURL, "/") + "/" + strings.TrimLeft(item.PosterPath, "/")
}
