package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for the detail pane
const (
	DetailBorderHeight     = 2
	DetailScrollIndicators = 2
)

// detailContent holds the three-zone layout content
type detailContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// DetailPane shows the selected item, enriched with genres, cast and
// trailer once a detail fetch completes
type DetailPane struct {
	item       *domain.Item
	favorite   bool
	loading    bool
	errText    string
	posterURL  string
	theme      styles.Theme
	width      int
	height     int
	offset     int
	maxVisible int
}

// NewDetailPane creates an empty detail pane
func NewDetailPane(theme styles.Theme) DetailPane {
	return DetailPane{theme: theme}
}

// SetTheme switches palettes
func (d *DetailPane) SetTheme(theme styles.Theme) {
	d.theme = theme
}

// SetItem shows item; scroll resets when the item changes
func (d *DetailPane) SetItem(item domain.Item, posterURL string) {
	if d.item == nil || d.item.ID != item.ID {
		d.offset = 0
		d.errText = ""
	}
	d.item = &item
	d.posterURL = posterURL
}

// Clear removes the shown item
func (d *DetailPane) Clear() {
	d.item = nil
	d.offset = 0
	d.loading = false
	d.errText = ""
}

// Item returns the shown item
func (d DetailPane) Item() (domain.Item, bool) {
	if d.item == nil {
		return domain.Item{}, false
	}
	return *d.item, true
}

func (d *DetailPane) SetFavorite(favorite bool) { d.favorite = favorite }
func (d *DetailPane) SetLoading(loading bool) { d.loading = loading }
func (d *DetailPane) SetError(text string) { d.errText = text }

// SetSize updates the component dimensions
func (d *DetailPane) SetSize(width, height int) {
	d.width = width
	d.height = height
	// Reserve border, scroll indicators, title and blank line
	d.maxVisible = max(height-DetailBorderHeight-DetailScrollIndicators-2, 1)
}

// ScrollDown moves the body one line down
func (d *DetailPane) ScrollDown() { d.offset++ }

// ScrollUp moves the body one line up
func (d *DetailPane) ScrollUp() {
	if d.offset > 0 {
		d.offset--
	}
}

// View renders the component
func (d DetailPane) View() string {
	style := d.theme.InactiveBorder

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := max(d.width-3, 10)
	content := d.render(contentWidth)

	titleLine := d.theme.Accent.Render(styles.Truncate("Details", contentWidth))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(d.maxVisible-len(headerLines)-len(footerLines), 1)

	offset := min(d.offset, max(len(bodyLines)-availableForBody, 0))
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = d.theme.Dim.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = d.theme.Dim.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if content.header != "" {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for range availableForBody - len(visibleBody) {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if content.footer != "" {
		parts = append(parts, footerLines...)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(d.width-frameW, 0)).
		Height(max(d.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

func (d DetailPane) render(width int) detailContent {
	if d.item == nil {
		return detailContent{body: d.theme.Dim.Render("No movie selected")}
	}
	item := *d.item
	return detailContent{
		header: d.renderHeader(item, width),
		body:   d.renderBody(item, width),
		footer: d.renderFooter(item, width),
	}
}

func (d DetailPane) renderHeader(item domain.Item, width int) string {
	var b strings.Builder

	b.WriteString(d.theme.Title.Render(styles.Truncate(item.Title, width)))
	b.WriteString("\n")

	// Meta line: Year · Runtime · Language
	var meta []string
	if year := item.Year(); year > 0 {
		meta = append(meta, fmt.Sprintf("%d", year))
	}
	if runtime := item.Detail.FormattedRuntime(); runtime != "" {
		meta = append(meta, runtime)
	}
	if item.Detail != nil && item.Detail.OriginalLanguage != "" {
		meta = append(meta, strings.ToUpper(item.Detail.OriginalLanguage))
	}
	if len(meta) > 0 {
		b.WriteString(d.theme.Dim.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}

	var status []string
	if item.Rated() {
		text := fmt.Sprintf("%s %s", styles.RatingChar, item.FormattedRating())
		if item.Detail != nil && item.Detail.VoteCount > 0 {
			text += fmt.Sprintf(" (%d votes)", item.Detail.VoteCount)
		}
		var ratingStyle lipgloss.Style
		switch r := *item.Rating; {
		case r >= 7:
			ratingStyle = d.theme.Success
		case r >= 5:
			ratingStyle = d.theme.Accent
		default:
			ratingStyle = d.theme.Error
		}
		status = append(status, ratingStyle.Render(text))
	} else {
		status = append(status, d.theme.Dim.Render(item.FormattedRating()))
	}
	if d.favorite {
		status = append(status, d.theme.Favorite.Render(styles.FavoriteChar+" Favorite"))
	}
	b.WriteString(strings.Join(status, "   "))

	return b.String()
}

func (d DetailPane) renderBody(item domain.Item, width int) string {
	var sections []string

	if item.Overview != "" {
		sections = append(sections, d.theme.Subtitle.Render(wordWrap(item.Overview, width)))
	}

	if item.Detail != nil {
		if len(item.Detail.Genres) > 0 {
			names := make([]string, len(item.Detail.Genres))
			for i, g := range item.Detail.Genres {
				names[i] = g.Name
			}
			sections = append(sections, d.theme.Accent.Render("Genres")+"\n"+wordWrap(strings.Join(names, ", "), width))
		}

		if len(item.Detail.Cast) > 0 {
			lines := []string{d.theme.Accent.Render("Cast")}
			for _, c := range item.Detail.Cast {
				line := c.Name
				if c.Character != "" {
					line += d.theme.Dim.Render(" as " + c.Character)
				}
				lines = append(lines, line)
			}
			sections = append(sections, strings.Join(lines, "\n"))
		}
	}

	switch {
	case d.loading:
		sections = append(sections, d.theme.Dim.Render("Loading details..."))
	case d.errText != "":
		sections = append(sections, d.theme.Error.Render(d.errText))
	}

	return strings.Join(sections, "\n\n")
}

func (d DetailPane) renderFooter(item domain.Item, width int) string {
	var lines []string
	if trailer := item.Detail.TrailerURL(); trailer != "" {
		lines = append(lines, d.theme.Dim.Render("Trailer: ")+styles.Truncate(trailer, width-9))
	}
	if d.posterURL != "" {
		lines = append(lines, d.theme.Dim.Render("Poster:  ")+styles.Truncate(d.posterURL, width-9))
	}
	return strings.Join(lines, "\n")
}

// splitLines splits a string into lines, returning nil for an empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for i, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}
		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
