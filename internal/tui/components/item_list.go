package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/search"
	"github.com/mmcdole/reel/internal/sensor"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for item lists
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// LoadMoreMsg is emitted when the last row of a paged list scrolls into view
type LoadMoreMsg struct{}

// ItemList is a scrollable list of catalog items with an optional local
// filter and an optional sentinel that requests the next page.
type ItemList struct {
	items     []domain.Item
	favorites map[int]bool
	theme     styles.Theme
	keys      ListKeyMap

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title     string
	emptyText string

	loading      bool
	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	results      []search.Result // nil when not filtering

	// Paging: sentinel watches the last row
	sentinel      *sensor.Visibility
	pagingAllowed bool
	loadRequested bool
}

// NewItemList creates an empty list
func NewItemList(title string, theme styles.Theme) *ItemList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.CharLimit = 100

	l := &ItemList{
		title:       title,
		emptyText:   "No movies",
		theme:       theme,
		keys:        DefaultListKeyMap(),
		favorites:   make(map[int]bool),
		filterInput: ti,
	}
	l.applyTheme()
	return l
}

// EnablePaging attaches a visibility sensor to the last row. LoadMoreMsg is
// emitted when that row enters the window while paging is allowed.
func (l *ItemList) EnablePaging() {
	l.sentinel = sensor.New(
		func() { l.loadRequested = true },
		sensor.WithGuard(func() bool { return l.pagingAllowed && !l.filterActive }),
	)
	l.observeSentinel()
}

// Close disconnects the sentinel. The list stops requesting pages.
func (l *ItemList) Close() {
	if l.sentinel != nil {
		l.sentinel.Disconnect()
		l.sentinel = nil
	}
	l.loadRequested = false
}

// SetPagingAllowed tells the sentinel whether a next page exists and no fetch
// is in flight. Becoming allowed re-arms the sentinel, so a last row that
// stayed on screen through a failed fetch fires again.
func (l *ItemList) SetPagingAllowed(allowed bool) {
	if allowed && !l.pagingAllowed && l.sentinel != nil {
		l.sentinel.Rearm()
	}
	l.pagingAllowed = allowed
}

// SetTheme switches palettes
func (l *ItemList) SetTheme(theme styles.Theme) {
	l.theme = theme
	l.applyTheme()
}

func (l *ItemList) applyTheme() {
	l.filterInput.PromptStyle = l.theme.Accent.Bold(true)
	l.filterInput.TextStyle = lipgloss.NewStyle().Foreground(l.theme.Palette.Foreground)
	l.filterInput.PlaceholderStyle = l.theme.Dim
}

// SetItems replaces the list content, keeping the cursor where possible
func (l *ItemList) SetItems(items []domain.Item) {
	l.items = items
	if l.filterActive {
		l.applyFilter()
	}
	l.clampCursor()
	l.observeSentinel()
}

// SetFavorites marks which rows show the favorite indicator
func (l *ItemList) SetFavorites(favorites []domain.Item) {
	l.favorites = make(map[int]bool, len(favorites))
	for _, item := range favorites {
		l.favorites[item.ID] = true
	}
}

func (l *ItemList) SetLoading(loading bool) { l.loading = loading }
func (l *ItemList) SetEmptyText(text string) { l.emptyText = text }
func (l *ItemList) SetTitle(title string) { l.title = title }
func (l *ItemList) SetSpinnerFrame(frame int) { l.spinnerFrame = frame }
func (l *ItemList) SetFocused(focused bool) { l.focused = focused }

func (l *ItemList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// Len returns the number of visible rows
func (l *ItemList) Len() int {
	if l.results != nil {
		return len(l.results)
	}
	return len(l.items)
}

// SelectedItem returns the item under the cursor
func (l *ItemList) SelectedItem() (domain.Item, bool) {
	if l.Len() == 0 {
		return domain.Item{}, false
	}
	return l.itemAt(l.cursor), true
}

// ResetCursor moves the selection back to the top
func (l *ItemList) ResetCursor() {
	l.cursor = 0
	l.offset = 0
}

// Update handles navigation and filter keys. It returns a LoadMoreMsg
// command when the sentinel fires.
func (l *ItemList) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	// Typing into the filter
	if l.filterActive && l.filterInput.Focused() {
		if isKey {
			switch {
			case key.Matches(keyMsg, l.keys.Escape):
				l.clearFilter()
				return nil
			case key.Matches(keyMsg, l.keys.Enter):
				l.filterInput.Blur()
				return nil
			case keyMsg.String() == "backspace" && l.filterInput.Value() == "":
				l.clearFilter()
				return nil
			}
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return cmd
	}

	if !isKey {
		return nil
	}

	if l.filterActive {
		switch {
		case key.Matches(keyMsg, l.keys.Escape):
			l.clearFilter()
			return nil
		case key.Matches(keyMsg, l.keys.Filter):
			l.filterInput.Focus()
			return nil
		}
	}

	count := l.Len()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, l.keys.Down):
		if l.cursor < count-1 {
			l.cursor++
		}
	case key.Matches(keyMsg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(keyMsg, l.keys.Home):
		l.cursor = 0
	case key.Matches(keyMsg, l.keys.End):
		l.cursor = count - 1
	case key.Matches(keyMsg, l.keys.HalfDown):
		l.cursor = min(l.cursor+max(l.maxVisible/2, 1), count-1)
	case key.Matches(keyMsg, l.keys.HalfUp):
		l.cursor = max(l.cursor-max(l.maxVisible/2, 1), 0)
	case key.Matches(keyMsg, l.keys.PageDown):
		l.cursor = min(l.cursor+max(l.maxVisible, 1), count-1)
	case key.Matches(keyMsg, l.keys.PageUp):
		l.cursor = max(l.cursor-max(l.maxVisible, 1), 0)
	default:
		return nil
	}
	l.ensureVisible()
	return l.CheckSentinel()
}

// CheckSentinel reports the last row's visibility to the sensor and returns
// a LoadMoreMsg command if it fired
func (l *ItemList) CheckSentinel() tea.Cmd {
	if l.sentinel == nil {
		return nil
	}
	l.sentinel.Report(l.sentinelVisible())
	if !l.loadRequested {
		return nil
	}
	l.loadRequested = false
	return func() tea.Msg { return LoadMoreMsg{} }
}

// ToggleFilter activates the filter input
func (l *ItemList) ToggleFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (l *ItemList) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (l *ItemList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (l *ItemList) ClearFilter() {
	l.clearFilter()
}

// Internal methods

func (l *ItemList) observeSentinel() {
	if l.sentinel == nil {
		return
	}
	if len(l.items) == 0 {
		l.sentinel.Disconnect()
		return
	}
	last := len(l.items) - 1
	l.sentinel.Observe(fmt.Sprintf("%d-%d", l.items[last].ID, last))
}

// sentinelVisible reports whether the last unfiltered row is inside the window
func (l *ItemList) sentinelVisible() bool {
	if l.results != nil || len(l.items) == 0 || l.maxVisible <= 0 {
		return false
	}
	last := len(l.items) - 1
	return last >= l.offset && last < l.offset+l.maxVisible
}

func (l *ItemList) itemAt(i int) domain.Item {
	if l.results != nil {
		return l.results[i].Item
	}
	return l.items[i]
}

func (l *ItemList) clampCursor() {
	if n := l.Len(); l.cursor >= n {
		l.cursor = max(n-1, 0)
	}
	l.ensureVisible()
}

func (l *ItemList) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	interiorHeight := l.height - BorderHeight
	l.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ItemList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *ItemList) clearFilter() {
	if l.filterActive && l.sentinel != nil {
		l.sentinel.Rearm()
	}
	l.filterActive = false
	l.filterQuery = ""
	l.results = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
	l.clampCursor()
}

func (l *ItemList) applyFilter() {
	query := l.filterInput.Value()
	l.filterQuery = query

	if strings.TrimSpace(query) == "" {
		l.results = nil
		return
	}

	l.results = search.Filter(query, l.items)
	if l.results == nil {
		l.results = []search.Result{}
	}
	l.cursor = 0
	l.offset = 0
}

// Rendering

func (l *ItemList) View() string {
	style := l.theme.InactiveBorder
	if l.focused {
		style = l.theme.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent())
}

func (l *ItemList) renderContent() string {
	itemWidth := max(l.width-BorderWidth, 10)

	titleLine := l.theme.Accent.Render(styles.Truncate(l.title, itemWidth))

	count := l.Len()
	if count == 0 {
		msg := l.emptyText
		if l.loading {
			msg = styles.SpinnerFrames[l.spinnerFrame%len(styles.SpinnerFrames)] + " Loading..."
		} else if l.filterActive && l.filterQuery != "" {
			msg = "No matches"
		}
		content := titleLine + "\n \n" + l.theme.Dim.Render(msg) + "\n "
		if l.filterActive {
			content += "\n" + l.renderFilterBar()
		}
		return content
	}

	end := min(l.offset+l.maxVisible, count)

	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		var matched []int
		if l.results != nil {
			matched = l.results[i].MatchedIndexes
		}
		lines = append(lines, l.renderItem(l.itemAt(i), matched, i == l.cursor, itemWidth))
	}

	// Always reserve the indicator lines so the layout doesn't shift
	header := " "
	if l.offset > 0 {
		header = l.theme.Dim.Render("↑ more")
	}
	footer := " "
	switch {
	case end < count:
		footer = l.theme.Dim.Render("↓ more")
	case l.loading:
		footer = l.theme.Dim.Render(styles.SpinnerFrames[l.spinnerFrame%len(styles.SpinnerFrames)] + " Loading more...")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if l.filterActive {
		content += "\n" + l.renderFilterBar()
	}
	return content
}

func (l *ItemList) renderItem(item domain.Item, matched []int, selected bool, width int) string {
	indicator := styles.NotFavoriteChar
	indicatorFg := l.theme.Palette.Dim
	if l.favorites[item.ID] {
		indicator = styles.FavoriteChar
		indicatorFg = l.theme.Palette.Favorite
	}

	rating := ""
	if item.Rated() {
		rating = fmt.Sprintf("  %s %.1f", styles.RatingChar, *item.Rating)
	}
	year := ""
	if y := item.Year(); y > 0 {
		year = fmt.Sprintf(" (%d)", y)
	}

	// indicator(1) + space(1) + margins(2)
	available := max(width-4-lipgloss.Width(rating)-len(year), 5)
	title := styles.Truncate(item.Title, available)
	if title == item.Title && len(matched) > 0 {
		title = l.theme.HighlightMatches(title, matched, selected)
	}

	ratingFg := l.theme.Palette.Accent
	parts := []styles.RowPart{
		{Text: indicator, Foreground: &indicatorFg},
		{Text: " " + title + year},
		{Text: rating, Foreground: &ratingFg},
	}
	return l.theme.RenderListRow(parts, selected, width)
}

func (l *ItemList) renderFilterBar() string {
	countStr := ""
	if l.filterQuery != "" {
		countStr = l.theme.Dim.Render(fmt.Sprintf(" [%d/%d]", l.Len(), len(l.items)))
	}
	return l.filterInput.View() + countStr
}
