package app

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/registrar/internal/domain"
	"github.com/zjrosen/registrar/internal/registry"
	"github.com/zjrosen/registrar/internal/ui/styles"
	"github.com/zjrosen/registrar/internal/ui/toaster"
)

// usersTableState lists every account for the admin.
type usersTableState struct {
	table table.Model
	users []domain.User
	ready bool
}

func (s usersTableState) reload(m Model) usersTableState {
	users, err := m.svc.ListUsers(m.session)
	if err != nil {
		return s
	}
	s.users = users

	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		role := "student"
		if u.IsAdmin {
			role = "admin"
		}
		rows = append(rows, table.Row{u.Username, styles.TruncateString(u.FullName, 28), u.RollNo, role})
	}

	if !s.ready {
		s.table = table.New(
			table.WithColumns([]table.Column{
				{Title: "Username", Width: 14},
				{Title: "Full name", Width: 28},
				{Title: "Roll no", Width: 16},
				{Title: "Role", Width: 8},
			}),
			table.WithFocused(true),
			table.WithHeight(12),
		)
		s.ready = true
	}
	s.table.SetRows(rows)
	return s
}

func (s usersTableState) setSize(width, height int) usersTableState {
	if !s.ready {
		return s
	}
	h := height - 8
	if h < 4 {
		h = 4
	}
	s.table.SetHeight(h)
	return s
}

func (m Model) updateUsers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m.homeScreen(), nil

	case key.Matches(msg, m.keys.Delete):
		i := m.users.table.Cursor()
		if i < 0 || i >= len(m.users.users) {
			return m, nil
		}
		username := m.users.users[i].Username
		if err := m.svc.DeleteUser(m.session, username); err != nil {
			m = m.toastErr(err)
		} else {
			m = m.toast(username+" deleted, seats returned", toaster.StyleSuccess)
			m.catalog.Invalidate(m.eventsCtx)
			m.users = m.users.reload(m)
		}
		return m, toaster.ScheduleDismiss(toastDuration)
	}

	var cmd tea.Cmd
	m.users.table, cmd = m.users.table.Update(msg)
	return m, cmd
}

func (m Model) viewUsers() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Users"),
		"",
		m.users.table.View(),
		"",
		styles.HelpHint.Render("j/k move · d delete · esc back"),
	))
}

// enrollTableState lists every enrollment with user and course detail.
type enrollTableState struct {
	table   table.Model
	details []registry.EnrollmentDetail
	ready   bool
}

func (s enrollTableState) reload(m Model) enrollTableState {
	details, err := m.svc.AllEnrollments(m.session)
	if err != nil {
		return s
	}
	s.details = details

	rows := make([]table.Row, 0, len(details))
	for _, d := range details {
		rows = append(rows, table.Row{
			d.User.Username,
			d.User.RollNo,
			d.Course.Code,
			styles.TruncateString(d.Course.Name, 30),
		})
	}

	if !s.ready {
		s.table = table.New(
			table.WithColumns([]table.Column{
				{Title: "Username", Width: 14},
				{Title: "Roll no", Width: 16},
				{Title: "Code", Width: 10},
				{Title: "Course", Width: 30},
			}),
			table.WithFocused(true),
			table.WithHeight(12),
		)
		s.ready = true
	}
	s.table.SetRows(rows)
	return s
}

func (s enrollTableState) setSize(width, height int) enrollTableState {
	if !s.ready {
		return s
	}
	h := height - 8
	if h < 4 {
		h = 4
	}
	s.table.SetHeight(h)
	return s
}

func (m Model) updateEnrollments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		return m.homeScreen(), nil
	}
	var cmd tea.Cmd
	m.rolls.table, cmd = m.rolls.table.Update(msg)
	return m, cmd
}

func (m Model) viewEnrollments() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("All Enrollments"),
		"",
		m.rolls.table.View(),
		"",
		styles.HelpHint.Render("j/k move · esc back"),
	))
}

// courseFormState adds a new course or edits an existing one.
type courseFormState struct {
	form     formState
	editCode string // empty means adding
}

func newCourseForm(editCode string) courseFormState {
	title := "Add Course"
	if editCode != "" {
		title = "Edit " + editCode
	}
	return courseFormState{
		form: newFormState(title, []fieldSpec{
			{label: "Course code", placeholder: "CS101"},
			{label: "Course name", placeholder: "Introduction to Programming"},
			{label: "Credit hours (1-6)", placeholder: "3"},
			{label: "Total seats", placeholder: "30"},
		}),
		editCode: editCode,
	}
}

// prefill loads existing course values into the form for editing.
func (s courseFormState) prefill(c domain.Course) courseFormState {
	s.form.inputs[0].SetValue(c.Code)
	s.form.inputs[1].SetValue(c.Name)
	s.form.inputs[2].SetValue(strconv.Itoa(c.CreditHours))
	s.form.inputs[3].SetValue(strconv.Itoa(c.TotalSeats))
	// Editing starts on the name; the code identifies the course.
	s.form = s.form.setFocus(1)
	return s
}

func (m Model) updateCourseForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		return m.homeScreen(), nil
	}

	var submit bool
	m.courseForm.form, submit = m.courseForm.form.update(msg, m.formKeys())
	if !submit {
		return m, nil
	}

	credits, err := strconv.Atoi(m.courseForm.form.value(2))
	if err != nil {
		m.courseForm.form.errMsg = "credit hours must be a number"
		return m, nil
	}
	seats, err := strconv.Atoi(m.courseForm.form.value(3))
	if err != nil {
		m.courseForm.form.errMsg = "total seats must be a number"
		return m, nil
	}

	if m.courseForm.editCode == "" {
		err = m.svc.AddCourse(m.session, m.courseForm.form.value(0), m.courseForm.form.value(1), credits, seats)
	} else {
		err = m.svc.UpdateCourse(m.session, m.courseForm.editCode, m.courseForm.form.value(1), credits, seats)
	}
	if err != nil {
		m.courseForm.form.errMsg = err.Error()
		return m, nil
	}

	m = m.toast("course saved", toaster.StyleSuccess)
	m.catalog.Invalidate(m.eventsCtx)
	m.courses = m.courses.reload(m)
	return m.goTo(screenCatalog), toaster.ScheduleDismiss(toastDuration)
}

func (m Model) viewCourseForm() string {
	return m.courseForm.form.view()
}

func newPrereqForm() formState {
	return newFormState("Add Prerequisite", []fieldSpec{
		{label: "Course code", placeholder: "CS201"},
		{label: "Required course code", placeholder: "CS101"},
	})
}

func (m Model) updatePrereqForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		return m.homeScreen(), nil
	}

	var submit bool
	m.prereqForm, submit = m.prereqForm.update(msg, m.formKeys())
	if !submit {
		return m, nil
	}

	course := m.prereqForm.value(0)
	prereq := m.prereqForm.value(1)
	if err := m.svc.AddPrerequisite(m.session, course, prereq); err != nil {
		m.prereqForm.errMsg = err.Error()
		return m, nil
	}

	m = m.toast(fmt.Sprintf("%s now requires %s", course, prereq), toaster.StyleSuccess)
	m = m.homeScreen()
	return m, toaster.ScheduleDismiss(toastDuration)
}

func (m Model) viewPrereqForm() string {
	return m.prereqForm.view()
}
