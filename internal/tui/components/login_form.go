package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

// LoginForm collects a username and password
type LoginForm struct {
	inputs  []textinput.Model
	focus   int
	errText string
	theme   styles.Theme
	keys    FormKeyMap
}

// NewLoginForm creates a login form with the username field focused
func NewLoginForm(theme styles.Theme) LoginForm {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = modalWidth - 6
	username.Prompt = "Username: "

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = modalWidth - 6
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	f := LoginForm{
		inputs: []textinput.Model{username, password},
		keys:   DefaultFormKeyMap(),
	}
	f.SetTheme(theme)
	f.Reset()
	return f
}

// SetTheme switches palettes
func (f *LoginForm) SetTheme(theme styles.Theme) {
	f.theme = theme
	for i := range f.inputs {
		f.inputs[i].PromptStyle = theme.Accent
		f.inputs[i].TextStyle = lipgloss.NewStyle().Foreground(theme.Palette.Foreground)
		f.inputs[i].PlaceholderStyle = theme.Dim
	}
}

// Reset clears both fields and focuses the username
func (f *LoginForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = fieldUsername
	f.errText = ""
	f.inputs[fieldUsername].Focus()
}

// SetError shows a message under the fields
func (f *LoginForm) SetError(text string) {
	f.errText = text
}

// Credentials returns the entered values
func (f LoginForm) Credentials() domain.Credentials {
	return domain.Credentials{
		Username: f.inputs[fieldUsername].Value(),
		Password: f.inputs[fieldPassword].Value(),
	}
}

// Update handles input events, returns (form, cmd, submitted).
// Enter on the username field moves to the password field.
func (f LoginForm) Update(msg tea.Msg) (LoginForm, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, f.keys.Submit):
			if f.focus == fieldUsername {
				f.setFocus(fieldPassword)
				return f, nil, false
			}
			return f, nil, true
		case key.Matches(keyMsg, f.keys.Next):
			f.setFocus((f.focus + 1) % fieldCount)
			return f, nil, false
		case key.Matches(keyMsg, f.keys.Prev):
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f *LoginForm) setFocus(field int) {
	f.inputs[f.focus].Blur()
	f.focus = field
	f.inputs[f.focus].Focus()
}

// View renders the form
func (f LoginForm) View() string {
	surface := lipgloss.NewStyle().Width(modalWidth).Background(f.theme.Palette.Surface)

	lines := []string{
		f.theme.ModalTitle.Width(modalWidth).Render("Sign in"),
		surface.Render(""),
		surface.Render(f.inputs[fieldUsername].View()),
		surface.Render(f.inputs[fieldPassword].View()),
		surface.Render(""),
	}
	if f.errText != "" {
		lines = append(lines, surface.Render(f.theme.Error.Render(f.errText)))
	}
	lines = append(lines, surface.Render(f.theme.Dim.Render(strings.Join([]string{
		"enter submit", "tab next field", "esc back",
	}, " · "))))

	return f.theme.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
