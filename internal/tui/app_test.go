package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/detail"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/prefs"
	"github.com/mmcdole/reel/internal/state"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageSize = 20

type stubCatalog struct {
	mu         sync.Mutex
	totalPages int
	failPage   int
	searches   []string
}

func movies(first, n int) []domain.Item {
	out := make([]domain.Item, n)
	for i := range out {
		out[i] = domain.Item{ID: first + i, Title: fmt.Sprintf("Movie %d", first+i)}
	}
	return out
}

func (c *stubCatalog) FetchTrending(ctx context.Context) ([]domain.Item, error) {
	return movies(1000, 5), nil
}

func (c *stubCatalog) Search(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	c.mu.Lock()
	c.searches = append(c.searches, fmt.Sprintf("%s#%d", query, page))
	fail := page == c.failPage
	c.mu.Unlock()
	if fail {
		return domain.SearchPage{}, domain.ErrRemoteUnavailable
	}
	return domain.SearchPage{
		Items:      movies((page-1)*pageSize+1, pageSize),
		Page:       page,
		TotalPages: c.totalPages,
	}, nil
}

func (c *stubCatalog) FetchDetail(ctx context.Context, id int) (domain.Item, error) {
	return domain.Item{
		ID:     id,
		Title:  fmt.Sprintf("Movie %d", id),
		Detail: &domain.Detail{Runtime: 120},
	}, nil
}

func (c *stubCatalog) FailPage(page int) {
	c.mu.Lock()
	c.failPage = page
	c.mu.Unlock()
}

func (c *stubCatalog) Searches() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.searches...)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type harness struct {
	t       *testing.T
	store   *state.Store
	catalog *stubCatalog
	model   Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	prefStore, err := prefs.Open(config.StorageConfig{Backend: config.StorageBolt})
	require.NoError(t, err)

	cat := &stubCatalog{totalPages: 3}
	observer := NewChannelObserver()
	store, err := state.Open(context.Background(), cat, prefStore, state.WithObserver(observer))
	require.NoError(t, err)
	store.Wait()
	t.Cleanup(func() {
		store.Close()
		prefStore.Close()
	})

	h := &harness{t: t, store: store, catalog: cat}
	h.model = NewModel(store, detail.NewService(cat, 8, nil), observer.Snapshots(), Options{})
	h.send(tea.WindowSizeMsg{Width: 100, Height: 20})
	h.sync()
	return h
}

// send delivers msg and returns the command it produced
func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

// sync feeds the store's current state to the model
func (h *harness) sync() tea.Cmd {
	return h.send(SnapshotMsg{Snapshot: h.store.Snapshot()})
}

// run executes cmd and delivers its message
func (h *harness) run(cmd tea.Cmd) tea.Cmd {
	h.t.Helper()
	require.NotNil(h.t, cmd)
	return h.send(cmd())
}

func (h *harness) search(query string) {
	h.t.Helper()
	h.send(keyRunes("s"))
	require.Equal(h.t, StateSearchInput, h.model.State)
	h.send(keyRunes(query))
	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(h.t, StateBrowsing, h.model.State)
	assert.Equal(h.t, TabSearch, h.model.Tab)
	h.run(cmd)
	h.sync()
}

func TestFirstSnapshotWithoutUserPromptsLogin(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, StateLogin, h.model.State)

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateBrowsing, h.model.State, "esc continues as guest")
	assert.Equal(t, 5, h.model.Lists[TabTrending].Len())
}

func TestLoginFormSignsIn(t *testing.T) {
	h := newHarness(t)

	h.send(keyRunes("neo"))
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.send(keyRunes("matrix"))
	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.run(cmd)
	h.sync()

	assert.Equal(t, StateBrowsing, h.model.State)
	require.True(t, h.model.Snapshot().Authenticated())
	assert.Equal(t, "neo", h.model.Snapshot().User.Username)

	h.send(keyRunes("L"))
	assert.Equal(t, StateConfirmLogout, h.model.State)
	h.run(h.send(keyRunes("y")))
	h.sync()
	assert.False(t, h.model.Snapshot().Authenticated())
}

func TestSearchFromInputModal(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEsc})

	h.search("dune")

	assert.Equal(t, []string{"dune#1"}, h.catalog.Searches())
	assert.Equal(t, pageSize, h.model.Lists[TabSearch].Len())
	assert.Equal(t, "dune", h.model.Snapshot().SearchQuery)
	assert.Equal(t, "dune", h.model.Snapshot().LastSearchQuery)
}

func TestScrollingToLastRowLoadsNextPage(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	h.search("dune")

	// Jump to the bottom: the sentinel row comes into view
	cmd := h.send(keyRunes("G"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, components.LoadMoreMsg{}, msg)

	h.run(h.send(msg))
	h.sync()
	assert.Equal(t, []string{"dune#1", "dune#2"}, h.catalog.Searches())
	assert.Equal(t, 2*pageSize, h.model.Lists[TabSearch].Len())

	// Cursor stays on the previous last row
	item, ok := h.model.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, pageSize, item.ID)
}

func TestFailedPageRetriesWithLoadMoreKey(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	h.search("dune")
	h.catalog.FailPage(2)

	cmd := h.send(keyRunes("G"))
	require.NotNil(t, cmd)
	h.run(h.send(cmd()))
	assert.True(t, h.model.StatusIsErr)
	assert.Contains(t, h.model.StatusMsg, "press m to retry")

	// The last row is still on screen but automatic paging waits
	h.sync()
	assert.Nil(t, h.model.Lists[TabSearch].CheckSentinel())
	assert.Equal(t, pageSize, h.model.Lists[TabSearch].Len())

	h.catalog.FailPage(0)
	cmd = h.send(keyRunes("m"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, components.LoadMoreMsg{}, msg)
	h.run(h.send(msg))
	h.sync()

	assert.Equal(t, []string{"dune#1", "dune#2", "dune#2"}, h.catalog.Searches())
	assert.Equal(t, 2*pageSize, h.model.Lists[TabSearch].Len())
}

func TestLoadMoreKeyOnlyOnSearchTab(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	h.search("dune")

	h.send(keyRunes("1"))
	assert.Nil(t, h.send(keyRunes("m")))
	assert.Equal(t, []string{"dune#1"}, h.catalog.Searches())
}

func TestClearSearchResetsResults(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	h.search("dune")

	h.send(keyRunes("c"))
	h.sync()
	assert.Zero(t, h.model.Lists[TabSearch].Len())
	assert.Empty(t, h.model.Snapshot().SearchQuery)
	assert.Equal(t, "dune", h.model.Snapshot().LastSearchQuery)
	assert.Equal(t, 5, h.model.Lists[TabTrending].Len(), "trending kept")
}

func TestFavoriteAndThemeToggles(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEsc})

	h.run(h.send(keyRunes("f")))
	h.sync()
	assert.True(t, h.store.IsFavorite(1000))
	assert.Equal(t, 1, h.model.Lists[TabFavorites].Len())
	assert.Contains(t, h.model.StatusMsg, "Added")

	dark := h.model.Snapshot().DarkMode
	h.run(h.send(keyRunes("t")))
	h.sync()
	assert.Equal(t, !dark, h.model.Snapshot().DarkMode)
}

func TestOpenDetailsFetchesDetail(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEsc})

	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, h.model.ShowDetails)
	h.run(cmd)

	item, ok := h.model.Detail.Item()
	require.True(t, ok)
	assert.Equal(t, 1000, item.ID)
	require.NotNil(t, item.Detail)
	assert.Equal(t, 120, item.Detail.Runtime)

	// Already loaded: no second fetch
	assert.Nil(t, h.send(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestViewRendersTabsAndFooter(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEsc})

	view := h.model.View()
	assert.Contains(t, view, "Trending")
	assert.Contains(t, view, "guest")
	assert.Contains(t, view, "help")

	h.send(keyRunes("?"))
	assert.Contains(t, h.model.View(), "NAVIGATION")
}

func TestChannelObserverKeepsLatest(t *testing.T) {
	o := NewChannelObserver()
	o.OnSnapshot(state.Snapshot{SearchQuery: "a"})
	o.OnSnapshot(state.Snapshot{SearchQuery: "b"})
	o.OnSnapshot(state.Snapshot{SearchQuery: "c"})

	got := <-o.Snapshots()
	assert.Equal(t, "c", got.SearchQuery)
	select {
	case extra := <-o.Snapshots():
		t.Fatalf("unexpected snapshot %q", extra.SearchQuery)
	default:
	}
}
