package app

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/registrar/internal/config"
	"github.com/zjrosen/registrar/internal/infrastructure/flatfile"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/pubsub"
	"github.com/zjrosen/registrar/internal/registry"
)

func newTestApp(t *testing.T) Model {
	t.Helper()

	dir := t.TempDir()
	files, err := flatfile.New(dir)
	require.NoError(t, err)
	svc, err := registry.New(files)
	require.NoError(t, err)
	require.NoError(t, svc.Seed(registry.DefaultSeed()))

	cfg := config.Defaults()
	cfg.DataDir = dir
	cfg.AutoRefresh = false

	m := New(svc, cfg)
	t.Cleanup(func() {
		_ = m.Close()
		svc.Close()
	})

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	return sized.(Model)
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func pressKey(t *testing.T, m Model, k string) Model {
	t.Helper()
	switch k {
	case "enter":
		return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		return press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	case "down":
		return press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	default:
		return press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// signIn walks the welcome menu and login form.
func signIn(t *testing.T, m Model, username, password string) Model {
	t.Helper()
	m = pressKey(t, m, "enter") // "Sign in"
	require.Equal(t, screenLogin, m.screen)
	m = typeString(t, m, username)
	m = pressKey(t, m, "tab")
	m = typeString(t, m, password)
	m = pressKey(t, m, "enter")
	return m
}

func TestApp_StartsOnWelcome(t *testing.T) {
	m := newTestApp(t)
	require.Equal(t, screenWelcome, m.screen)
	require.Contains(t, m.View(), "Course Registration")
	require.Contains(t, m.View(), "Sign in")
}

func TestApp_LoginAsStudent(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")

	require.Equal(t, screenStudentMenu, m.screen)
	require.True(t, m.session.Authenticated())
	require.Contains(t, m.View(), "Student Menu")
	require.Contains(t, m.View(), "Ali Ahmed")
}

func TestApp_LoginRejectsWrongPassword(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "wrong")

	require.Equal(t, screenLogin, m.screen)
	require.False(t, m.session.Authenticated())
	require.Contains(t, m.View(), "invalid username or password")
}

func TestApp_LoginAsAdmin(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "admin", "admin123")

	require.Equal(t, screenAdminMenu, m.screen)
	require.Contains(t, m.View(), "Administration")
}

func TestApp_RegisterNewStudent(t *testing.T) {
	m := newTestApp(t)
	m = pressKey(t, m, "down")  // move to "Register"
	m = pressKey(t, m, "enter") // open register form
	require.Equal(t, screenRegister, m.screen)

	m = typeString(t, m, "zara")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "pass123")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "Zara Malik")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "02-134242-099")
	m = pressKey(t, m, "enter")

	require.Equal(t, screenWelcome, m.screen)

	m = signIn(t, m, "zara", "pass123")
	require.Equal(t, screenStudentMenu, m.screen)
}

func TestApp_RegisterValidationShowsError(t *testing.T) {
	m := newTestApp(t)
	m = pressKey(t, m, "down")
	m = pressKey(t, m, "enter")

	m = typeString(t, m, "has space")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "pass123")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "Some Name")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "R-1")
	m = pressKey(t, m, "enter")

	require.Equal(t, screenRegister, m.screen, "stays on form")
	require.Contains(t, m.View(), "username")
}

func TestApp_CatalogShowsSeededCourses(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")
	m = pressKey(t, m, "enter") // "Browse course catalog"

	require.Equal(t, screenCatalog, m.screen)
	view := m.View()
	require.Contains(t, view, "CS101")
	require.Contains(t, view, "ENG101")
	require.Contains(t, view, "by code")
}

func TestApp_CatalogSortToggle(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")
	m = pressKey(t, m, "enter")

	m = pressKey(t, m, "s")
	require.Contains(t, m.View(), "by name")
	require.Equal(t, "Calculus I", m.courses.courses[0].Name)

	m = pressKey(t, m, "s")
	require.Contains(t, m.View(), "by code")
	require.Equal(t, "CS101", m.courses.courses[0].Code)
}

func TestApp_EnrollFromCatalog(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")
	m = pressKey(t, m, "enter") // catalog, cursor on CS101

	// Move to ENG101 (code order: CS101 CS201 CS301 CS401 ENG101 MATH101)
	for i := 0; i < 4; i++ {
		m = pressKey(t, m, "j")
	}
	course, ok := m.courses.selected()
	require.True(t, ok)
	require.Equal(t, "ENG101", course.Code)
	before := course.AvailableSeats

	m = pressKey(t, m, "e")
	require.Contains(t, m.toaster.Message(), "enrolled in ENG101")

	course, _ = m.courses.selected()
	require.Equal(t, before-1, course.AvailableSeats)
}

func TestApp_EnrollBlockedByPrerequisite(t *testing.T) {
	m := newTestApp(t)
	m = pressKey(t, m, "down")
	m = pressKey(t, m, "enter")
	m = typeString(t, m, "fresh")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "pass123")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "Fresh Student")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "02-134242-500")
	m = pressKey(t, m, "enter")
	m = signIn(t, m, "fresh", "pass123")

	m = pressKey(t, m, "enter") // catalog
	m = pressKey(t, m, "j")     // CS201
	m = pressKey(t, m, "e")

	require.Contains(t, m.toaster.Message(), "CS101")
}

func TestApp_CourseDetailShowsPrerequisites(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")
	m = pressKey(t, m, "enter") // catalog
	m = pressKey(t, m, "j")     // CS201
	m = pressKey(t, m, "enter") // detail

	require.Equal(t, screenCourseDetail, m.screen)
	view := m.View()
	require.Contains(t, view, "CS201")
	require.Contains(t, view, "CS101")

	m = pressKey(t, m, "esc")
	require.Equal(t, screenCatalog, m.screen)
}

func TestApp_UndoFromCatalog(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")
	m = pressKey(t, m, "enter") // catalog
	for i := 0; i < 4; i++ {
		m = pressKey(t, m, "j")
	}
	m = pressKey(t, m, "e") // enroll ENG101
	m = pressKey(t, m, "u") // undo from catalog

	require.Contains(t, m.toaster.Message(), "undone")

	m = pressKey(t, m, "u")
	require.Contains(t, m.toaster.Message(), "nothing to undo")
}

func TestApp_MyEnrollments(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")
	m = pressKey(t, m, "j") // "My enrollments"
	m = pressKey(t, m, "enter")

	require.Equal(t, screenMyCourses, m.screen)
	view := m.View()
	require.Contains(t, view, "CS101")
	require.Contains(t, view, "MATH101")
}

func TestApp_PaymentFlow(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")
	for i := 0; i < 3; i++ {
		m = pressKey(t, m, "j")
	}
	m = pressKey(t, m, "enter") // "Pay fees"
	require.Equal(t, screenPayment, m.screen)

	m = typeString(t, m, "txn-100")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "2500")
	m = pressKey(t, m, "enter")

	require.Equal(t, screenStudentMenu, m.screen)
	require.Contains(t, m.toaster.Message(), "receipt")
}

func TestApp_PaymentLookup(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")
	for i := 0; i < 3; i++ {
		m = pressKey(t, m, "j")
	}
	m = pressKey(t, m, "enter")
	m = typeString(t, m, "txn-200")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "900")
	m = pressKey(t, m, "enter")

	for i := 0; i < 4; i++ {
		m = pressKey(t, m, "j")
	}
	m = pressKey(t, m, "enter") // "Payment status"
	require.Equal(t, screenPaymentLookup, m.screen)

	m = typeString(t, m, "txn-200")
	m = pressKey(t, m, "enter")
	require.Contains(t, m.View(), "900.00")
	require.Contains(t, m.View(), "completed")
}

func TestApp_AdminAddCourse(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "admin", "admin123")
	m = pressKey(t, m, "j") // "Add a course"
	m = pressKey(t, m, "enter")
	require.Equal(t, screenCourseForm, m.screen)

	m = typeString(t, m, "ART101")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "Drawing I")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "2")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "15")
	m = pressKey(t, m, "enter")

	require.Equal(t, screenCatalog, m.screen)
	require.Contains(t, m.View(), "ART101")
}

func TestApp_AdminDeleteCourse(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "admin", "admin123")
	m = pressKey(t, m, "enter") // "Course catalog"
	require.Equal(t, screenCatalog, m.screen)

	m = pressKey(t, m, "d") // delete CS101
	require.Contains(t, m.toaster.Message(), "CS101 deleted")
	require.NotContains(t, m.View(), "Introduction to Programming")
}

func TestApp_AdminUsersList(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "admin", "admin123")
	for i := 0; i < 3; i++ {
		m = pressKey(t, m, "j")
	}
	m = pressKey(t, m, "enter") // "Users"
	require.Equal(t, screenUsers, m.screen)
	require.Contains(t, m.View(), "Ali Ahmed")

	// The admin cannot delete itself (cursor starts on first row).
	usernames := make([]string, 0)
	for _, u := range m.users.users {
		usernames = append(usernames, u.Username)
	}
	require.Contains(t, usernames, "admin")
}

func TestApp_AdminAddPrerequisite(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "admin", "admin123")
	m = pressKey(t, m, "j")
	m = pressKey(t, m, "j") // "Add a prerequisite"
	m = pressKey(t, m, "enter")
	require.Equal(t, screenPrereqForm, m.screen)

	m = typeString(t, m, "ENG101")
	m = pressKey(t, m, "tab")
	m = typeString(t, m, "CS101")
	m = pressKey(t, m, "enter")

	require.Equal(t, screenAdminMenu, m.screen)
	require.Contains(t, m.toaster.Message(), "ENG101 now requires CS101")
}

func TestApp_AdminEnrollmentsList(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "admin", "admin123")
	for i := 0; i < 4; i++ {
		m = pressKey(t, m, "j")
	}
	m = pressKey(t, m, "enter") // "All enrollments"
	require.Equal(t, screenEnrollments, m.screen)
	view := m.View()
	require.Contains(t, view, "Ali")
	require.Contains(t, view, "CS101")
}

func TestApp_HelpOverlayToggles(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")
	m = pressKey(t, m, "?")
	require.True(t, m.helpVisible)
	require.Contains(t, m.View(), "enroll")

	m = pressKey(t, m, "esc")
	require.False(t, m.helpVisible)
}

func TestApp_LogViewerToggles(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.True(t, m.logs.Visible())
	require.Contains(t, m.View(), "Logs")

	m = pressKey(t, m, "esc")
	require.False(t, m.logs.Visible())
}

func TestApp_LogViewerShowsLiveEntries(t *testing.T) {
	cleanup, err := log.InitWithTeaLog(filepath.Join(t.TempDir(), "debug.log"), "test")
	require.NoError(t, err)
	t.Cleanup(func() {
		log.SetEnabled(false)
		log.ClearBuffer()
		cleanup()
	})
	log.SetEnabled(true)
	log.ClearBuffer()

	m := newTestApp(t)
	require.NotNil(t, m.logListener)

	log.Info(log.CatRegistry, "seat released for CS101")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Contains(t, m.View(), "seat released for CS101")

	// An entry logged while the viewer is open arrives as an event and
	// refreshes the view.
	log.Info(log.CatRegistry, "payment recorded for Ali")
	event, ok := m.logListener.Listen()().(log.LogEvent)
	require.True(t, ok)
	m = press(t, m, event)
	require.True(t, m.logs.Visible())
	require.Contains(t, m.View(), "payment recorded for Ali")
}

func TestApp_LogoutReturnsToWelcome(t *testing.T) {
	m := newTestApp(t)
	m = signIn(t, m, "Ali", "123")
	for i := 0; i < 5; i++ {
		m = pressKey(t, m, "j")
	}
	m = pressKey(t, m, "enter") // "Sign out"

	require.Equal(t, screenWelcome, m.screen)
	require.False(t, m.session.Authenticated())
}

func TestApp_ReloadEventShowsToast(t *testing.T) {
	m := newTestApp(t)

	m = press(t, m, pubsub.Event[registry.Change]{
		Type:    pubsub.ReloadEvent,
		Payload: registry.Change{Entity: "state", Key: "reload"},
	})
	require.Contains(t, m.toaster.Message(), "reloaded")
}
