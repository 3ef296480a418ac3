package state

import (
	"slices"

	"github.com/mmcdole/reel/internal/domain"
)

// Snapshot is the read model published to display surfaces.
// It is a copy: surfaces may hold it freely but never write through it.
type Snapshot struct {
	Trending        []domain.Item
	SearchResults   []domain.Item
	SearchQuery     string
	Loading         bool // Trending or search fetch in flight
	TrendingLoading bool
	SearchLoading   bool
	Error           string
	DarkMode        bool
	Favorites       []domain.Item
	Page            int // 1-based
	TotalPages      int
	User            *domain.User // nil = signed out
	LastSearchQuery string
}

// HasMorePages reports whether LoadNextPage would fetch anything
func (s Snapshot) HasMorePages() bool {
	return s.SearchQuery != "" && s.Page < s.TotalPages
}

// IsFavorite reports whether an item with id is in the favorites
func (s Snapshot) IsFavorite(id int) bool {
	return slices.ContainsFunc(s.Favorites, func(item domain.Item) bool {
		return item.ID == id
	})
}

// Authenticated reports whether a user is signed in
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// Observer receives every published snapshot. OnSnapshot is called with the
// store lock held: it must not block and must not call back into the Store.
type Observer interface {
	OnSnapshot(snap Snapshot)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Snapshot)

func (f ObserverFunc) OnSnapshot(snap Snapshot) { f(snap) }
