package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/detail"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/state"
)

// Command factories for async operations

const requestTimeout = 30 * time.Second

// WaitForSnapshotCmd blocks until the store publishes and returns the snapshot.
// Re-issue it after every SnapshotMsg.
func WaitForSnapshotCmd(ch <-chan state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return SnapshotMsg{Snapshot: snap}
	}
}

// SearchCmd starts a new search session
func SearchCmd(store *state.Store, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := store.Search(ctx, query)
		return SearchDoneMsg{Query: query, Err: err}
	}
}

// LoadNextPageCmd fetches the next search page
func LoadNextPageCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return PageLoadedMsg{Err: store.LoadNextPage(ctx)}
	}
}

// RefreshTrendingCmd refetches the trending list
func RefreshTrendingCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return TrendingRefreshedMsg{Err: store.RefreshTrending(ctx)}
	}
}

// ToggleFavoriteCmd adds or removes item from favorites
func ToggleFavoriteCmd(store *state.Store, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		added, err := store.ToggleFavorite(item)
		return FavoriteToggledMsg{Item: item, Added: added, Err: err}
	}
}

// ToggleThemeCmd flips dark mode
func ToggleThemeCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		dark, err := store.ToggleTheme()
		return ThemeToggledMsg{Dark: dark, Err: err}
	}
}

// LoginCmd signs in with creds
func LoginCmd(store *state.Store, creds domain.Credentials) tea.Cmd {
	return func() tea.Msg {
		user, err := store.Login(creds)
		return LoginMsg{User: user, Err: err}
	}
}

// LogoutCmd signs the user out
func LogoutCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return LogoutMsg{Err: store.Logout()}
	}
}

// LoadDetailCmd fetches genres, cast and videos for id
func LoadDetailCmd(svc *detail.Service, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		item, err := svc.Get(ctx, id)
		return DetailLoadedMsg{ID: id, Item: item, Err: err}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
