package ui

import "github.com/charmbracelet/lipgloss"

// ASCII art for the jellyparse header as a single string to keep its spacing
const jellyparseASCII = `    ██        ██ ██
       ██████ ██ ██ ██  ██ ██████ ██████ ██████ ██████ ██████
    ██ ██  ██ ██ ██ ██  ██ ██  ██     ██ ██     ██     ██  ██
    ██ ██████ ██ ██ ██████ ██████ ██████ ██     ██████ ██████
    ██ ██     ██ ██     ██ ██     ██  ██ ██         ██ ██
████   ██████ ██ ██ ██████ ██     ██████ ██     ██████ ██████`

// FormatASCIIHeader renders the header with the RAMA theme
func FormatASCIIHeader() string {
	return lipgloss.NewStyle().
		Foreground(RAMARed).
		Bold(true).
		Render(jellyparseASCII)
}

// FormatASCIIHeaderWithSubtext renders the header with a muted subtitle
func FormatASCIIHeaderWithSubtext(subtext string) string {
	return FormatASCIIHeader() + "\n\n" + MutedStyle.Render(subtext)
}
