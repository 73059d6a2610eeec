package help

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestView_Student(t *testing.T) {
	m := New().SetSize(80, 24)
	out := m.View()
	require.Contains(t, out, "Registrar")
	require.Contains(t, out, "enroll")
	require.Contains(t, out, "undo")
}

func TestView_Admin(t *testing.T) {
	m := New().SetAdmin(true).SetSize(80, 24)
	out := m.View()
	require.Contains(t, out, "admin")
	require.Contains(t, out, "Deleting a course")
}

func TestOverlayCentersOverBackground(t *testing.T) {
	m := New().SetSize(100, 40)
	bg := ""
	for i := 0; i < 40; i++ {
		bg += "........................................\n"
	}
	out := m.Overlay(bg)
	require.Contains(t, out, "Registrar")
}
