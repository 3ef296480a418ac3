package domain

import (
	"context"
)

// Catalog provides read-only access to the remote movie metadata service
type Catalog interface {
	// FetchTrending returns this week's trending items
	FetchTrending(ctx context.Context) ([]Item, error)

	// Search returns one page (1-based) of results for a text query
	Search(ctx context.Context, query string, page int) (SearchPage, error)

	// FetchDetail returns an item with its Detail payload populated
	FetchDetail(ctx context.Context, id int) (Item, error)
}
