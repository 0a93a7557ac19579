package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RAMA palette
var (
	RAMARed        = lipgloss.Color("#ef233c")
	RAMAFireRed    = lipgloss.Color("#d90429")
	RAMABackground = lipgloss.Color("#2b2d42")
	RAMAForeground = lipgloss.Color("#edf2f4")
	RAMAMuted      = lipgloss.Color("#8d99ae")

	ColorFound = lipgloss.Color("#2ecc71")
	ColorTrace = lipgloss.Color("#f39c12")
	ColorError = RAMARed
	ColorLabel = lipgloss.Color("#3498db")
)

const defaultWidth = 80

var (
	barStyle = lipgloss.NewStyle().Padding(0, 1)

	HeaderStyle = barStyle.
			Bold(true).
			Foreground(RAMAForeground).
			Background(RAMARed)

	FooterStyle = barStyle.
			Foreground(RAMAMuted).
			Background(RAMABackground)

	// TitleStyle marks a section of the body
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RAMARed).
			MarginTop(1).
			MarginBottom(1)

	ContentStyle = lipgloss.NewStyle().Foreground(RAMAForeground)
	MutedStyle   = lipgloss.NewStyle().Foreground(RAMAMuted)

	// HighlightStyle is the primary title banner
	HighlightStyle = lipgloss.NewStyle().
			Foreground(RAMABackground).
			Background(RAMARed).
			Bold(true).
			Padding(0, 1)

	// SuccessStyle renders values derived from the parse (edition, folder name)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorFound).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorTrace).Bold(true)

	// LabelStyle pads field names so values line up
	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel).Width(16)

	// StatStyle renders numbers: years, ids, counts
	StatStyle = lipgloss.NewStyle().Foreground(RAMARed).Bold(true)

	keyStyle  = lipgloss.NewStyle().Foreground(RAMARed).Bold(true)
	descStyle = lipgloss.NewStyle().Foreground(RAMAMuted)
)

// FormatKeybinding formats a keybinding for display in footer
func FormatKeybinding(key, description string) string {
	return keyStyle.Render(key) + " " + descStyle.Render(description)
}

// FormatHeader renders a full-width header bar; width <= 0 uses 80 columns
func FormatHeader(title string, width int) string {
	return HeaderStyle.Width(barWidth(width)).Render(title)
}

// FormatFooter renders keybindings in a full-width footer bar
func FormatFooter(width int, keybindings ...string) string {
	return FooterStyle.Width(barWidth(width)).Render(strings.Join(keybindings, "  "))
}

// FormatField renders one "label  value" line; empty values show as a muted dash
func FormatField(label, value string, style lipgloss.Style) string {
	if value == "" {
		return LabelStyle.Render(label) + MutedStyle.Render("-")
	}
	return LabelStyle.Render(label) + style.Render(value)
}

func barWidth(width int) int {
	if width <= 0 {
		return defaultWidth
	}
	return width
}
