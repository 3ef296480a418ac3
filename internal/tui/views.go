package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// RenderSpinner returns the spinner glyph for frame
func (m Model) RenderSpinner() string {
	return m.theme.Accent.Render(styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)])
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmLogout:
		return m.renderLogoutConfirmation()
	case StateLogin:
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Login.View())
	}

	content := m.activeList().View()
	if m.ShowDetails {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.Detail.View())
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		content,
		m.renderFooter(),
	)

	if m.SearchInput.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SearchInput.View())
	}

	return view
}

// renderTabs renders the tab bar with the signed-in user on the right
func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := TabTrending; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		switch t {
		case TabSearch:
			if len(m.snap.SearchResults) > 0 {
				label = fmt.Sprintf("%s (%d)", label, len(m.snap.SearchResults))
			}
		case TabFavorites:
			if len(m.snap.Favorites) > 0 {
				label = fmt.Sprintf("%s (%d)", label, len(m.snap.Favorites))
			}
		}
		if t == m.Tab {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}
	left := strings.Join(tabs, " ")

	who := m.theme.Dim.Render("guest")
	if m.snap.User != nil {
		who = m.theme.Accent.Render(m.snap.User.Username)
	}
	mode := "light"
	if m.snap.DarkMode {
		mode = "dark"
	}
	right := who + m.theme.Dim.Render(" · "+mode)

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.snap.Error != "":
		left = m.theme.Error.Render(m.snap.Error)
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = m.theme.Error.Render(m.StatusMsg)
		} else {
			left = m.theme.Dim.Render(m.StatusMsg)
		}
	case m.snap.Loading:
		left = m.RenderSpinner() + " " + m.theme.Dim.Render("Loading...")
	}

	var hints []string
	hint := func(k, desc string) {
		hints = append(hints, m.theme.HelpKey.Render(k)+m.theme.HelpDesc.Render(" "+desc))
	}
	hint("s", "search")
	hint("f", "favorite")
	hint("enter", "details")
	if m.Tab == TabFavorites {
		hint("/", "filter")
	}
	center := strings.Join(hints, "  ")

	right := m.theme.HelpKey.Render("?") + m.theme.HelpDesc.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      MOVIES
  j/k        Up/down               s      Search
  g/G        First/last item       c      Clear search
  PgUp/PgDn  Scroll page           f      Toggle favorite
  Ctrl+u/d   Scroll half page      Enter  Load details
  1/2/3      Trending/Search/Favs  i      Toggle detail pane
  Tab        Next tab              J/K    Scroll details
                                   /      Filter favorites
OTHER
  r          Refresh trending
  m          Load more results
  t          Toggle light/dark
  L          Sign in / sign out
  q          Quit
  ?          This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		m.theme.Modal.Render(help))
}

// renderLogoutConfirmation renders the sign-out confirmation modal
func (m Model) renderLogoutConfirmation() string {
	modal := `
              Sign out?

  Your favorites and theme are kept
  on this machine.

        [Y] Yes      [N] No
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		m.theme.Modal.Render(modal))
}
