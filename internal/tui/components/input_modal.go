package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const modalWidth = 40

// InputModal is a single-line text prompt
type InputModal struct {
	visible bool
	title   string
	input   textinput.Model
	theme   styles.Theme
	keys    FormKeyMap
}

// NewInputModal creates a hidden input modal
func NewInputModal(theme styles.Theme) InputModal {
	ti := textinput.New()
	ti.Placeholder = "Search for movies..."
	ti.CharLimit = 100
	ti.Width = modalWidth - 6
	ti.Prompt = ""

	m := InputModal{input: ti, keys: DefaultFormKeyMap()}
	m.SetTheme(theme)
	return m
}

// SetTheme switches palettes
func (m *InputModal) SetTheme(theme styles.Theme) {
	m.theme = theme
	m.input.TextStyle = lipgloss.NewStyle().Foreground(theme.Palette.Foreground)
	m.input.PlaceholderStyle = theme.Dim
}

// Show displays the modal with a title and initial text
func (m *InputModal) Show(title, value string) {
	m.visible = true
	m.title = title
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// Update handles input events, returns (modal, cmd, submitted)
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Submit):
			return m, nil, true
		case key.Matches(keyMsg, m.keys.Cancel):
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	surface := lipgloss.NewStyle().Width(modalWidth).Background(m.theme.Palette.Surface)

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.ModalTitle.Width(modalWidth).Render(m.title),
		surface.Render(""),
		surface.Render(m.input.View()),
	)

	return m.theme.Modal.Render(content)
}
