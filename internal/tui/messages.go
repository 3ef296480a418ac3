package tui

import (
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/state"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SnapshotMsg carries a state publication from the store
type SnapshotMsg struct {
	Snapshot state.Snapshot
}

// SearchDoneMsg signals that a search returned.
// The results themselves arrive as a SnapshotMsg.
type SearchDoneMsg struct {
	Query string
	Err   error
}

// PageLoadedMsg signals that a next-page fetch returned
type PageLoadedMsg struct {
	Err error
}

// TrendingRefreshedMsg signals that a trending refresh returned
type TrendingRefreshedMsg struct {
	Err error
}

// FavoriteToggledMsg signals that an item was added to or removed from favorites
type FavoriteToggledMsg struct {
	Item  domain.Item
	Added bool
	Err   error
}

// ThemeToggledMsg signals that the theme flag flipped
type ThemeToggledMsg struct {
	Dark bool
	Err  error
}

// LoginMsg signals the result of a sign-in attempt
type LoginMsg struct {
	User domain.User
	Err  error
}

// LogoutMsg signals that the user signed out
type LogoutMsg struct {
	Err error
}

// DetailLoadedMsg carries an item with its Detail populated
type DetailLoadedMsg struct {
	ID   int
	Item domain.Item
	Err  error
}

// TickMsg is sent periodically for animations
type TickMsg struct{}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}
