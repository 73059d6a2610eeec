package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/registrar/internal/ui/styles"
	"github.com/zjrosen/registrar/internal/ui/toaster"
)

// menuAction identifies what a menu entry does.
type menuAction int

const (
	actionLogin menuAction = iota
	actionRegister
	actionQuit
	actionCatalog
	actionMyCourses
	actionUndo
	actionPayment
	actionPaymentLookup
	actionLogout
	actionUsers
	actionEnrollments
	actionAddCourse
	actionAddPrereq
)

type menuItem struct {
	label  string
	action menuAction
}

type menuState struct {
	title    string
	items    []menuItem
	selected int
}

func welcomeMenu() menuState {
	return menuState{
		title: "Course Registration",
		items: []menuItem{
			{"Sign in", actionLogin},
			{"Register as a new student", actionRegister},
			{"Quit", actionQuit},
		},
	}
}

func studentMenu() menuState {
	return menuState{
		title: "Student Menu",
		items: []menuItem{
			{"Browse course catalog", actionCatalog},
			{"My enrollments", actionMyCourses},
			{"Undo last enrollment", actionUndo},
			{"Pay fees", actionPayment},
			{"Payment status", actionPaymentLookup},
			{"Sign out", actionLogout},
		},
	}
}

func adminMenu() menuState {
	return menuState{
		title: "Administration",
		items: []menuItem{
			{"Course catalog", actionCatalog},
			{"Add a course", actionAddCourse},
			{"Add a prerequisite", actionAddPrereq},
			{"Users", actionUsers},
			{"All enrollments", actionEnrollments},
			{"Payment status", actionPaymentLookup},
			{"Sign out", actionLogout},
		},
	}
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menu.selected > 0 {
			m.menu.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menu.selected < len(m.menu.items)-1 {
			m.menu.selected++
		}
	case key.Matches(msg, m.keys.Undo) && m.screen == screenStudentMenu:
		return m.doUndo()
	case key.Matches(msg, m.keys.Enter):
		return m.runMenuAction(m.menu.items[m.menu.selected].action)
	case key.Matches(msg, m.keys.Escape) && m.screen != screenWelcome:
		// Menus are the top of each role's navigation; esc does nothing.
	}
	return m, nil
}

func (m Model) runMenuAction(action menuAction) (tea.Model, tea.Cmd) {
	switch action {
	case actionLogin:
		m.login = newLoginForm()
		return m.goTo(screenLogin), nil
	case actionRegister:
		m.register = newRegisterForm()
		return m.goTo(screenRegister), nil
	case actionQuit:
		return m, tea.Quit
	case actionCatalog:
		m.courses = m.courses.reload(m)
		return m.goTo(screenCatalog), nil
	case actionMyCourses:
		m.myCourses = m.myCourses.reload(m)
		return m.goTo(screenMyCourses), nil
	case actionUndo:
		return m.doUndo()
	case actionPayment:
		m.payment = newPaymentForm()
		return m.goTo(screenPayment), nil
	case actionPaymentLookup:
		m.lookup = newLookupForm()
		m.paymentOut = ""
		return m.goTo(screenPaymentLookup), nil
	case actionLogout:
		m.session = m.svc.Logout(m.session)
		return m.homeScreen(), nil
	case actionUsers:
		m.users = m.users.reload(m)
		return m.goTo(screenUsers), nil
	case actionEnrollments:
		m.rolls = m.rolls.reload(m)
		return m.goTo(screenEnrollments), nil
	case actionAddCourse:
		m.courseForm = newCourseForm("")
		return m.goTo(screenCourseForm), nil
	case actionAddPrereq:
		m.prereqForm = newPrereqForm()
		return m.goTo(screenPrereqForm), nil
	}
	return m, nil
}

// doUndo reverses the last enrollment of this login session.
func (m Model) doUndo() (tea.Model, tea.Cmd) {
	undone, err := m.svc.Undo(m.session)
	if err != nil {
		m = m.toastErr(err)
	} else {
		m = m.toast("enrollment in "+undone.CourseCode+" undone", toaster.StyleSuccess)
	}
	m.catalog.Invalidate(m.eventsCtx)
	m = m.refreshTables()
	return m, toaster.ScheduleDismiss(toastDuration)
}

func (m Model) viewMenu() string {
	lines := []string{styles.Title.Render(m.menu.title), ""}
	for i, item := range m.menu.items {
		if i == m.menu.selected {
			lines = append(lines, styles.MenuSelected.Render("› "+item.label))
		} else {
			lines = append(lines, styles.MenuItem.Render(item.label))
		}
	}
	lines = append(lines, "", styles.HelpHint.Render("j/k move · enter select"))
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
