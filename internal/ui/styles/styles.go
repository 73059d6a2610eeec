// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/registrar/internal/config"
)

// Color variables, set once from the theme at startup.
var (
	HighlightColor = lipgloss.Color("#7C3AED")
	SubtleColor    = lipgloss.Color("#6B7280")
	ErrorColor     = lipgloss.Color("#EF4444")
	SuccessColor   = lipgloss.Color("#10B981")
)

// Init applies the configured theme colors. Empty values keep defaults.
func Init(theme config.ThemeConfig) {
	if theme.Highlight != "" {
		HighlightColor = lipgloss.Color(theme.Highlight)
	}
	if theme.Subtle != "" {
		SubtleColor = lipgloss.Color(theme.Subtle)
	}
	if theme.Error != "" {
		ErrorColor = lipgloss.Color(theme.Error)
	}
	if theme.Success != "" {
		SuccessColor = lipgloss.Color(theme.Success)
	}
	rebuild()
}

var (
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	FormLabel    lipgloss.Style
	ErrorText    lipgloss.Style
	SuccessText  lipgloss.Style
	StatusBar    lipgloss.Style
	HelpHint     lipgloss.Style
	Box          lipgloss.Style
)

func rebuild() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)
	Subtitle = lipgloss.NewStyle().Foreground(SubtleColor)
	MenuItem = lipgloss.NewStyle().PaddingLeft(2)
	MenuSelected = lipgloss.NewStyle().PaddingLeft(0).Bold(true).Foreground(HighlightColor)
	FormLabel = lipgloss.NewStyle().Foreground(SubtleColor)
	ErrorText = lipgloss.NewStyle().Foreground(ErrorColor)
	SuccessText = lipgloss.NewStyle().Foreground(SuccessColor)
	StatusBar = lipgloss.NewStyle().Foreground(SubtleColor)
	HelpHint = lipgloss.NewStyle().Foreground(SubtleColor).Italic(true)
	Box = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(SubtleColor).Padding(0, 2)
}

func init() {
	rebuild()
}

// TruncateString shortens s to max columns, appending an ellipsis when
// anything was cut.
func TruncateString(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "…")
}
