package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens text to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps each line of text to maxWidth, preserving words and line breaks
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 60
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) <= maxWidth {
			continue
		}
		var b strings.Builder
		lineLen := 0
		for j, word := range strings.Fields(line) {
			w := lipgloss.Width(word)
			if j > 0 {
				if lineLen+1+w > maxWidth {
					b.WriteString("\n")
					lineLen = 0
				} else {
					b.WriteString(" ")
					lineLen++
				}
			}
			b.WriteString(word)
			lineLen += w
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorSuccess   = lipgloss.Color("#10B981")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorWhite     = lipgloss.Color("#F9FAFB")

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Subtitle
	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleLabelFocused = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	// Box
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)
)
