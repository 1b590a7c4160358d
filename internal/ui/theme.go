package ui

import (
	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Reversed   lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
}

var (
	darkPalette = palette{
		Background: lipgloss.Color("#2b2b2b"),
		Surface:    lipgloss.Color("#363636"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#a0a0a0"),
		Accent:     lipgloss.Color("#0078d7"),
		Reversed:   lipgloss.Color("#f38ba8"),
		Border:     lipgloss.Color("#555555"),
		Success:    lipgloss.Color("#94e2d5"),
		Warning:    lipgloss.Color("#f9e2af"),
	}
	lightPalette = palette{
		Background: lipgloss.Color("#fafafa"),
		Surface:    lipgloss.Color("#e8e8e8"),
		Text:       lipgloss.Color("#1e1e1e"),
		Muted:      lipgloss.Color("#6c6c6c"),
		Accent:     lipgloss.Color("#0063b1"),
		Reversed:   lipgloss.Color("#b4233c"),
		Border:     lipgloss.Color("#c8c8c8"),
		Success:    lipgloss.Color("#2e7d32"),
		Warning:    lipgloss.Color("#b26a00"),
	}
)

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// glamourStyle names the glamour standard style matching the theme
func glamourStyle(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	position lipgloss.Style
	card     lipgloss.Style
	reversed lipgloss.Style
	cursor   lipgloss.Style
	muted    lipgloss.Style
	found    lipgloss.Style
	warning  lipgloss.Style
	panel    lipgloss.Style
}

func newStyles(dark bool) styles {
	p := paletteFor(dark)
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		header:   lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface).Padding(0, 1),
		position: lipgloss.NewStyle().Foreground(p.Accent),
		card:     lipgloss.NewStyle().Foreground(p.Text),
		reversed: lipgloss.NewStyle().Foreground(p.Reversed).Italic(true),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		muted:    lipgloss.NewStyle().Foreground(p.Muted),
		found:    lipgloss.NewStyle().Foreground(p.Success),
		warning:  lipgloss.NewStyle().Foreground(p.Warning),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
	}
}
