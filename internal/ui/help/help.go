// Package help contains the help overlay component.
package help

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/registrar/internal/ui/markdown"
	"github.com/zjrosen/registrar/internal/ui/overlay"
	"github.com/zjrosen/registrar/internal/ui/styles"
)

const studentDoc = `# Registrar

## Course catalog

| Key | Action |
|-----|--------|
| j/k | move selection |
| s   | toggle sort (code / name) |
| e   | enroll in selected course |
| enter | course details and prerequisites |
| r   | reload from disk |

## Anywhere

| Key | Action |
|-----|--------|
| u   | undo last enrollment (this login) |
| ?   | this help |
| ctrl+l | log viewer |
| esc | back |
| ctrl+c | quit |

Enrollment checks prerequisites and seat availability. Undo only
reverses enrollments made during the current login.
`

const adminDoc = `# Registrar (admin)

## Management

| Key | Action |
|-----|--------|
| j/k | move selection |
| enter | open / edit |
| d   | delete selected course or user |
| r   | reload from disk |

Courses, users, enrollments, and prerequisites are managed from the
admin menu. Deleting a course drops every enrollment in it; deleting
a user returns their seats.

## Anywhere

| Key | Action |
|-----|--------|
| ?   | this help |
| ctrl+l | log viewer |
| esc | back |
| ctrl+c | quit |
`

// Model holds the help view state.
type Model struct {
	admin  bool
	width  int
	height int
}

// New creates a help view for the student screens.
func New() Model {
	return Model{}
}

// SetAdmin switches between the student and admin help documents.
func (m Model) SetAdmin(admin bool) Model {
	m.admin = admin
	return m
}

// SetSize updates the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help document in a centered box.
func (m Model) View() string {
	doc := studentDoc
	if m.admin {
		doc = adminDoc
	}

	width := m.width - 10
	if width > 64 {
		width = 64
	}
	if width < 20 {
		width = 20
	}

	renderer, err := markdown.New(width, "")
	var body string
	if err == nil {
		body, err = renderer.Render(doc)
	}
	if err != nil {
		body = fmt.Sprintf("help unavailable: %v", err)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.SubtleColor).
		Padding(0, 2).
		Render(body)

	return box
}

// Overlay renders the help box centered over the background view.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
