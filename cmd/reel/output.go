package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/search"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const titleWidth = 45

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// printItems renders items as a table. Favorites are marked with a heart.
func printItems(w io.Writer, items []domain.Item, isFavorite func(int) bool) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		mark := ""
		if isFavorite != nil && isFavorite(item.ID) {
			mark = styles.FavoriteChar
		}
		year := ""
		if y := item.Year(); y > 0 {
			year = strconv.Itoa(y)
		}
		rows = append(rows, []string{
			strconv.Itoa(item.ID),
			styles.Truncate(item.Title, titleWidth),
			year,
			item.FormattedRating(),
			mark,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "YEAR", "RATING", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t)
}

// printMatches renders filter results with the matched characters highlighted
func printMatches(w io.Writer, results []search.Result) {
	theme := styles.NewTheme(true)
	for _, r := range results {
		fmt.Fprintf(w, "%8d  %s  %s\n", r.Item.ID,
			theme.HighlightMatches(r.Item.Title, r.MatchedIndexes, false),
			theme.Dim.Render(r.Item.Description()))
	}
}

// printDetail renders the full detail of one item
func printDetail(w io.Writer, item domain.Item, posterURL string) {
	title := item.Title
	if y := item.Year(); y > 0 {
		title = fmt.Sprintf("%s (%d)", title, y)
	}
	fmt.Fprintln(w, headerStyle.UnsetPadding().Render(title))

	facts := []string{item.FormattedRating()}
	if d := item.Detail; d != nil {
		if rt := d.FormattedRuntime(); rt != "" {
			facts = append(facts, rt)
		}
		if d.OriginalLanguage != "" {
			facts = append(facts, strings.ToUpper(d.OriginalLanguage))
		}
	}
	fmt.Fprintln(w, strings.Join(facts, " · "))

	if d := item.Detail; d != nil && len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		fmt.Fprintf(w, "Genres: %s\n", strings.Join(names, ", "))
	}

	if item.Overview != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, lipgloss.NewStyle().Width(80).Render(item.Overview))
	}

	if d := item.Detail; d != nil && len(d.Cast) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Cast:")
		for _, c := range d.Cast[:min(len(d.Cast), 8)] {
			if c.Character != "" {
				fmt.Fprintf(w, "  %s as %s\n", c.Name, c.Character)
			} else {
				fmt.Fprintf(w, "  %s\n", c.Name)
			}
		}
	}

	fmt.Fprintln(w)
	if trailer := item.Detail.TrailerURL(); trailer != "" {
		fmt.Fprintf(w, "Trailer: %s\n", trailer)
	}
	fmt.Fprintf(w, "Poster:  %s\n", posterURL)
}
