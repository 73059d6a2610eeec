// Package logview contains an in-app viewer for recent log entries, so a
// debug session does not require leaving the TUI to tail the log file.
package logview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/ui/overlay"
	"github.com/zjrosen/registrar/internal/ui/styles"
)

const (
	maxBoxWidth     = 100
	minBoxWidth     = 40
	maxViewHeight   = 20
	minViewHeight   = 5
	bufferReadLimit = 1000
)

// Model holds the log viewer state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden log viewer showing all levels.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Visible reports whether the viewer is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Show makes the viewer visible with the current buffer contents.
func (m Model) Show() Model {
	m.visible = true
	m.refresh()
	return m
}

// Hide closes the viewer.
func (m Model) Hide() Model {
	m.visible = false
	return m
}

// SetSize updates the viewer dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	if m.visible {
		m.refresh()
	}
	return m
}

// Refresh re-reads the log buffer into the viewport.
func (m Model) Refresh() Model {
	if m.visible {
		m.refresh()
	}
	return m
}

// Update handles keys while the viewer is open. Closing is the caller's
// concern; level filters, clearing, and scrolling are handled here.
func (m Model) Update(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "c":
		log.ClearBuffer()
		m.refresh()
	case "d":
		m.minLevel = log.LevelDebug
		m.refresh()
	case "i":
		m.minLevel = log.LevelInfo
		m.refresh()
	case "w":
		m.minLevel = log.LevelWarn
		m.refresh()
	case "e":
		m.minLevel = log.LevelError
		m.refresh()
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	}
	return m
}

// View renders the viewer box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.boxWidth()
	divider := lipgloss.NewStyle().
		Foreground(styles.SubtleColor).
		Render(strings.Repeat("─", boxWidth))

	var b strings.Builder
	b.WriteString(styles.Title.Render("Logs"))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.filterHint())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.SubtleColor).
		Width(boxWidth).
		Render(b.String())
}

// Overlay renders the viewer centered over the background view.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}

	contentWidth := m.boxWidth() - 2

	// Header, footer, and borders take six lines around the viewport.
	vh := m.height - 6
	if vh > maxViewHeight {
		vh = maxViewHeight
	}
	if vh < minViewHeight {
		vh = minViewHeight
	}

	m.viewport = viewport.New(contentWidth, vh)
	m.viewport.SetContent(m.content(contentWidth))
	m.viewport.GotoBottom()
}

func (m Model) content(width int) string {
	var lines []string
	for _, entry := range log.GetRecentLogs(bufferReadLimit) {
		if entryLevel(entry) < m.minLevel {
			continue
		}
		lines = append(lines, colorize(entry, width))
	}
	if len(lines) == 0 {
		return styles.Subtitle.Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

func (m Model) boxWidth() int {
	w := m.width - 4
	if w > maxBoxWidth {
		w = maxBoxWidth
	}
	if w < minBoxWidth {
		w = minBoxWidth
	}
	return w
}

// entryLevel recovers the severity from a formatted entry. Entries without
// a recognizable level tag always pass the filter.
func entryLevel(entry string) log.Level {
	switch {
	case strings.Contains(entry, "[ERROR]"):
		return log.LevelError
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo
	case strings.Contains(entry, "[DEBUG]"):
		return log.LevelDebug
	default:
		return log.LevelError
	}
}

func colorize(entry string, maxWidth int) string {
	entry = strings.TrimSuffix(entry, "\n")
	if ansi.StringWidth(entry) > maxWidth {
		entry = ansi.Truncate(entry, maxWidth-3, "...")
	}

	var color lipgloss.Color
	switch {
	case strings.Contains(entry, "[ERROR]"):
		color = styles.ErrorColor
	case strings.Contains(entry, "[WARN]"):
		color = styles.HighlightColor
	case strings.Contains(entry, "[DEBUG]"):
		color = styles.SubtleColor
	default:
		return entry
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.SubtleColor)
	active := lipgloss.NewStyle().Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		level log.Level
		label string
	}{
		{log.LevelDebug, "[d] Debug"},
		{log.LevelInfo, "[i] Info"},
		{log.LevelWarn, "[w] Warn"},
		{log.LevelError, "[e] Error"},
	} {
		if m.minLevel == f.level {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}
