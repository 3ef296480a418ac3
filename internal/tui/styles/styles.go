package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Amber      = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Paper      = lipgloss.Color("#F3F4F6")
	Ink        = lipgloss.Color("#111827")
	Mist       = lipgloss.Color("#D1D5DB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Rose       = lipgloss.Color("#E11D48")
)

// Raw indicator characters (unstyled)
const (
	FavoriteChar    = "♥"
	NotFavoriteChar = "♡"
	RatingChar      = "★"
)

// SpinnerFrames are the braille frames of the loading spinner
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Palette is the set of colors one theme renders with
type Palette struct {
	Accent     lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Dim        lipgloss.Color
	Selection  lipgloss.Color
	Surface    lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Favorite   lipgloss.Color
}

// DarkPalette is used when dark mode is on
var DarkPalette = Palette{
	Accent:     Amber,
	Foreground: White,
	Muted:      LightGray,
	Dim:        DimGray,
	Selection:  SlateLight,
	Surface:    SlateDark,
	Error:      Red,
	Success:    Green,
	Favorite:   Rose,
}

// LightPalette is the default
var LightPalette = Palette{
	Accent:     lipgloss.Color("#B45309"),
	Foreground: Ink,
	Muted:      SlateLight,
	Dim:        DimGray,
	Selection:  Mist,
	Surface:    Paper,
	Error:      lipgloss.Color("#B91C1C"),
	Success:    lipgloss.Color("#047857"),
	Favorite:   Rose,
}

// Theme holds the rendered styles for one palette
type Theme struct {
	Dark    bool
	Palette Palette

	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Dim       lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Favorite  lipgloss.Style
	Highlight lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	MatchHighlight         lipgloss.Style
	MatchHighlightSelected lipgloss.Style
}

// NewTheme builds the dark or light theme
func NewTheme(dark bool) Theme {
	p := LightPalette
	if dark {
		p = DarkPalette
	}

	return Theme{
		Dark:    dark,
		Palette: p,

		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent),
		InactiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Dim),

		Title:    lipgloss.NewStyle().Foreground(p.Foreground).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(p.Muted),
		Dim:      lipgloss.NewStyle().Foreground(p.Dim),
		Accent:   lipgloss.NewStyle().Foreground(p.Accent),
		Error:    lipgloss.NewStyle().Foreground(p.Error),
		Success:  lipgloss.NewStyle().Foreground(p.Success),
		Favorite: lipgloss.NewStyle().Foreground(p.Favorite),
		Highlight: lipgloss.NewStyle().
			Foreground(p.Surface).
			Background(p.Accent).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(p.Surface).
			Background(p.Accent).
			Bold(true).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2).
			Background(p.Surface),
		ModalTitle: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Surface).
			Bold(true),

		HelpKey:  lipgloss.NewStyle().Foreground(p.Accent),
		HelpDesc: lipgloss.NewStyle().Foreground(p.Dim),

		MatchHighlight: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		MatchHighlightSelected: lipgloss.NewStyle().
			Foreground(p.Accent).
			Background(p.Selection).
			Bold(true),
	}
}

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled separately so ANSI resets don't clear the row background.
func (t Theme) RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := t.Palette.Selection

	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(t.Palette.Foreground)
		default:
			style = style.Foreground(t.Palette.Muted)
		}
		if selected {
			style = style.Background(bg)
		}
		b.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill to width minus the left/right margin
	if pad := width - visibleLen - 2; pad > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		b.WriteString(padStyle.Render(strings.Repeat(" ", pad)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + b.String() + margin
}

// HighlightMatches renders text with the byte offsets in matched emphasized,
// as reported by sahilm/fuzzy
func (t Theme) HighlightMatches(text string, matched []int, selected bool) string {
	if len(matched) == 0 {
		return text
	}
	style := t.MatchHighlight
	if selected {
		style = t.MatchHighlightSelected
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var b strings.Builder
	for i, r := range text {
		if set[i] {
			b.WriteString(style.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
