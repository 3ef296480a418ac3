package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/catalog"
	"github.com/mmcdole/reel/internal/detail"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/state"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearchInput
	StateLogin
	StateHelp
	StateConfirmLogout
)

// Tab selects which list is shown
type Tab int

const (
	TabTrending Tab = iota
	TabSearch
	TabFavorites
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabTrending:
		return "Trending"
	case TabSearch:
		return "Search"
	case TabFavorites:
		return "Favorites"
	default:
		return ""
	}
}

// Layout proportions
const (
	ListPercent   = 55 // List width when the detail pane is shown
	MinListWidth  = 30
	ChromeHeight  = 2 // Tab bar + footer
	statusTimeout = 3 * time.Second
)

// Options configures the model
type Options struct {
	ImageBaseURL string
	ShowDetails  bool // Detail pane visible at start
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Store     *state.Store
	Details   *detail.Service
	snapshots <-chan state.Snapshot
	snap      state.Snapshot
	hasSnap   bool

	// UI Components
	Tab         Tab
	Lists       [tabCount]*components.ItemList
	Detail      components.DetailPane
	SearchInput components.InputModal
	Login       components.LoginForm

	theme        styles.Theme
	imageBaseURL string

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	ShowDetails  bool

	// Set when a next-page fetch fails; automatic paging waits for m
	pageFailed bool
}

// NewModel creates the application model. snapshots is the receive side of
// the ChannelObserver subscribed to store.
func NewModel(store *state.Store, details *detail.Service, snapshots <-chan state.Snapshot, opts Options) Model {
	theme := styles.NewTheme(false)

	m := Model{
		State:        StateBrowsing,
		Store:        store,
		Details:      details,
		snapshots:    snapshots,
		Detail:       components.NewDetailPane(theme),
		SearchInput:  components.NewInputModal(theme),
		Login:        components.NewLoginForm(theme),
		theme:        theme,
		imageBaseURL: opts.ImageBaseURL,
		ShowDetails:  opts.ShowDetails,
	}

	m.Lists[TabTrending] = components.NewItemList("Trending this week", theme)
	m.Lists[TabTrending].SetEmptyText("No trending movies")

	m.Lists[TabSearch] = components.NewItemList("Search", theme)
	m.Lists[TabSearch].SetEmptyText("Press s to search")
	m.Lists[TabSearch].EnablePaging()

	m.Lists[TabFavorites] = components.NewItemList("Favorites", theme)
	m.Lists[TabFavorites].SetEmptyText("No favorites yet")

	m.Lists[TabTrending].SetFocused(true)
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForSnapshotCmd(m.snapshots),
		TickCmd(100*time.Millisecond),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		for _, l := range m.Lists {
			l.SetSpinnerFrame(m.SpinnerFrame)
		}
		return m, TickCmd(100 * time.Millisecond)

	case SnapshotMsg:
		first := !m.hasSnap
		cmd := m.applySnapshot(msg.Snapshot)
		cmds := []tea.Cmd{cmd, WaitForSnapshotCmd(m.snapshots)}
		if first && msg.Snapshot.User == nil {
			m.showLogin()
		}
		return m, tea.Batch(cmds...)

	case components.LoadMoreMsg:
		return m, LoadNextPageCmd(m.Store)

	case PageLoadedMsg:
		if msg.Err != nil {
			m.pageFailed = true
			m.Lists[TabSearch].SetPagingAllowed(false)
			return m.setStatus("Failed to load more results, press m to retry", true)
		}
		m.pageFailed = false
		return m, nil

	case SearchDoneMsg:
		m.pageFailed = false
		// Failures also surface through Snapshot.Error
		if msg.Err != nil {
			return m, nil
		}
		if msg.Query != "" {
			return m.setStatus(fmt.Sprintf("Results for %q", msg.Query), false)
		}
		return m, nil

	case TrendingRefreshedMsg:
		if msg.Err == nil {
			return m.setStatus("Trending refreshed", false)
		}
		return m, nil

	case FavoriteToggledMsg:
		if msg.Err != nil {
			return m.setStatus("Failed to save favorites", true)
		}
		if msg.Added {
			return m.setStatus(fmt.Sprintf("Added %q to favorites", msg.Item.Title), false)
		}
		return m.setStatus(fmt.Sprintf("Removed %q from favorites", msg.Item.Title), false)

	case ThemeToggledMsg:
		if msg.Err != nil {
			return m.setStatus("Failed to save theme", true)
		}
		return m, nil

	case LoginMsg:
		if msg.Err != nil {
			m.Login.SetError("Username and password are required")
			return m, nil
		}
		m.State = StateBrowsing
		m.Login.Reset()
		return m.setStatus("Signed in as "+msg.User.Username, false)

	case LogoutMsg:
		if msg.Err != nil {
			return m.setStatus("Failed to sign out", true)
		}
		return m.setStatus("Signed out", false)

	case DetailLoadedMsg:
		shown, ok := m.Detail.Item()
		if !ok || shown.ID != msg.ID {
			return m, nil
		}
		m.Detail.SetLoading(false)
		if msg.Err != nil {
			m.Detail.SetError("Failed to load details")
			return m, nil
		}
		m.Detail.SetItem(msg.Item, catalog.PosterURL(m.imageBaseURL, msg.Item))
		return m, nil

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		return m.setStatus(msg.Error(), true)
	}

	// Forward everything else (cursor blink etc.) to the active input
	switch m.State {
	case StateSearchInput:
		var cmd tea.Cmd
		m.SearchInput, cmd, _ = m.SearchInput.Update(msg)
		return m, cmd
	case StateLogin:
		var cmd tea.Cmd
		m.Login, cmd, _ = m.Login.Update(msg)
		return m, cmd
	}
	return m, m.activeList().Update(msg)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			return m, LogoutCmd(m.Store)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil

	case StateSearchInput:
		var cmd tea.Cmd
		var submitted bool
		m.SearchInput, cmd, submitted = m.SearchInput.Update(msg)
		if !m.SearchInput.IsVisible() {
			m.State = StateBrowsing
			return m, cmd
		}
		if submitted {
			query := strings.TrimSpace(m.SearchInput.Value())
			m.SearchInput.Hide()
			m.State = StateBrowsing
			if query == "" {
				return m, nil
			}
			m.switchTab(TabSearch)
			m.Lists[TabSearch].ResetCursor()
			return m, SearchCmd(m.Store, query)
		}
		return m, cmd

	case StateLogin:
		if key.Matches(msg, Keys.Escape) {
			// Continue as guest
			m.State = StateBrowsing
			m.Login.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		var submitted bool
		m.Login, cmd, submitted = m.Login.Update(msg)
		if submitted {
			return m, LoginCmd(m.Store, m.Login.Credentials())
		}
		return m, cmd
	}

	list := m.activeList()

	// The favorites filter owns the keyboard while typing
	if list.IsFilterTyping() {
		return m, list.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Trending):
		cmd := m.switchTab(TabTrending)
		return m, cmd
	case key.Matches(msg, Keys.Search):
		cmd := m.switchTab(TabSearch)
		return m, cmd
	case key.Matches(msg, Keys.Favorites):
		cmd := m.switchTab(TabFavorites)
		return m, cmd
	case key.Matches(msg, Keys.NextTab):
		cmd := m.switchTab((m.Tab + 1) % tabCount)
		return m, cmd
	case key.Matches(msg, Keys.PrevTab):
		cmd := m.switchTab((m.Tab + tabCount - 1) % tabCount)
		return m, cmd

	case key.Matches(msg, Keys.NewSearch):
		m.State = StateSearchInput
		value := m.snap.SearchQuery
		if value == "" {
			value = m.snap.LastSearchQuery
		}
		m.SearchInput.Show("Search movies", value)
		return m, nil

	case key.Matches(msg, Keys.ClearSearch):
		m.pageFailed = false
		m.Store.ResetSearch()
		m.Lists[TabSearch].ResetCursor()
		return m, nil

	case key.Matches(msg, Keys.Filter) && m.Tab == TabFavorites:
		list.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		if item, ok := list.SelectedItem(); ok {
			return m, ToggleFavoriteCmd(m.Store, item)
		}
		return m, nil

	case key.Matches(msg, Keys.Details):
		cmd := m.openDetails()
		return m, cmd

	case key.Matches(msg, Keys.ToggleDetails):
		m.ShowDetails = !m.ShowDetails
		m.updateLayout()
		m.syncDetail()
		return m, nil

	case key.Matches(msg, Keys.ScrollDown):
		m.Detail.ScrollDown()
		return m, nil
	case key.Matches(msg, Keys.ScrollUp):
		m.Detail.ScrollUp()
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		return m, RefreshTrendingCmd(m.Store)

	case key.Matches(msg, Keys.LoadMore) && m.Tab == TabSearch:
		if !m.snap.HasMorePages() || m.snap.SearchLoading {
			return m, nil
		}
		m.pageFailed = false
		return m, func() tea.Msg { return components.LoadMoreMsg{} }

	case key.Matches(msg, Keys.Theme):
		return m, ToggleThemeCmd(m.Store)

	case key.Matches(msg, Keys.Account):
		if m.snap.Authenticated() {
			m.State = StateConfirmLogout
		} else {
			m.showLogin()
		}
		return m, nil

	case key.Matches(msg, Keys.Escape) && list.IsFiltering():
		list.ClearFilter()
		return m, nil
	}

	cmd := list.Update(msg)
	m.syncDetail()
	return m, cmd
}

// applySnapshot pushes a store publication into every component. It returns
// the sentinel command if the search list's last row is on screen.
func (m *Model) applySnapshot(snap state.Snapshot) tea.Cmd {
	if !m.hasSnap || snap.DarkMode != m.snap.DarkMode {
		m.setTheme(styles.NewTheme(snap.DarkMode))
	}
	m.snap = snap
	m.hasSnap = true

	trending := m.Lists[TabTrending]
	trending.SetItems(snap.Trending)
	trending.SetLoading(snap.TrendingLoading)

	results := m.Lists[TabSearch]
	results.SetItems(snap.SearchResults)
	results.SetLoading(snap.SearchLoading)
	results.SetPagingAllowed(snap.HasMorePages() && !snap.SearchLoading && !m.pageFailed)
	results.SetTitle(searchTitle(snap))
	if snap.SearchQuery == "" {
		results.SetEmptyText("Press s to search")
	} else {
		results.SetEmptyText("No results")
	}

	m.Lists[TabFavorites].SetItems(snap.Favorites)

	for _, l := range m.Lists {
		l.SetFavorites(snap.Favorites)
	}
	m.syncDetail()

	if m.Tab == TabSearch {
		return results.CheckSentinel()
	}
	return nil
}

func searchTitle(snap state.Snapshot) string {
	if snap.SearchQuery == "" {
		return "Search"
	}
	if snap.TotalPages > 0 {
		return fmt.Sprintf("Search: %s (page %d of %d)", snap.SearchQuery, snap.Page, snap.TotalPages)
	}
	return "Search: " + snap.SearchQuery
}

func (m *Model) setTheme(theme styles.Theme) {
	m.theme = theme
	for _, l := range m.Lists {
		l.SetTheme(theme)
	}
	m.Detail.SetTheme(theme)
	m.SearchInput.SetTheme(theme)
	m.Login.SetTheme(theme)
}

func (m *Model) showLogin() {
	m.Login.Reset()
	m.State = StateLogin
}

func (m Model) activeList() *components.ItemList {
	return m.Lists[m.Tab]
}

// switchTab focuses another list. Returns the sentinel command when
// switching onto search results that end on screen.
func (m *Model) switchTab(tab Tab) tea.Cmd {
	m.Lists[m.Tab].SetFocused(false)
	m.Tab = tab
	m.Lists[m.Tab].SetFocused(true)
	m.syncDetail()
	if tab == TabSearch {
		return m.Lists[TabSearch].CheckSentinel()
	}
	return nil
}

// syncDetail shows the selected item in the detail pane, keeping fetched
// detail when the selection hasn't changed
func (m *Model) syncDetail() {
	item, ok := m.activeList().SelectedItem()
	if !ok {
		m.Detail.Clear()
		return
	}
	if shown, ok := m.Detail.Item(); ok && shown.ID == item.ID && shown.Detail != nil {
		item = shown
	}
	m.Detail.SetItem(item, catalog.PosterURL(m.imageBaseURL, item))
	m.Detail.SetFavorite(m.snap.IsFavorite(item.ID))
}

func (m *Model) openDetails() tea.Cmd {
	item, ok := m.activeList().SelectedItem()
	if !ok {
		return nil
	}
	if !m.ShowDetails {
		m.ShowDetails = true
		m.updateLayout()
	}
	m.syncDetail()

	if shown, _ := m.Detail.Item(); shown.Detail != nil || m.Details == nil {
		return nil
	}
	m.Detail.SetLoading(true)
	return LoadDetailCmd(m.Details, item.ID)
}

// quit releases the list sentinels before exiting
func (m Model) quit() (tea.Model, tea.Cmd) {
	for _, l := range m.Lists {
		l.Close()
	}
	return m, tea.Quit
}

func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusTimeout)
}

func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	contentHeight := m.Height - ChromeHeight

	listWidth := m.Width
	if m.ShowDetails {
		listWidth = max(m.Width*ListPercent/100, MinListWidth)
		m.Detail.SetSize(m.Width-listWidth, contentHeight)
	}
	for _, l := range m.Lists {
		l.SetSize(listWidth, contentHeight)
	}
}

// Snapshot returns the last applied store publication
func (m Model) Snapshot() state.Snapshot {
	return m.snap
}

// SelectedItem returns the item under the cursor of the active tab
func (m Model) SelectedItem() (domain.Item, bool) {
	return m.activeList().SelectedItem()
}
