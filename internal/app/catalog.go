package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/registrar/internal/domain"
	"github.com/zjrosen/registrar/internal/registry"
	"github.com/zjrosen/registrar/internal/ui/styles"
	"github.com/zjrosen/registrar/internal/ui/toaster"
)

// courseTableState wraps the catalog table and its sort order.
type courseTableState struct {
	table   table.Model
	sort    registry.SortKey
	courses []domain.Course
	ready   bool
}

func catalogColumns() []table.Column {
	return []table.Column{
		{Title: "Code", Width: 10},
		{Title: "Course", Width: 34},
		{Title: "Credits", Width: 7},
		{Title: "Seats", Width: 9},
	}
}

func (s courseTableState) reload(m Model) courseTableState {
	if s.sort == "" {
		s.sort = registry.SortByCode
	}
	s.courses = m.catalog.Courses(m.eventsCtx, s.sort)

	rows := make([]table.Row, 0, len(s.courses))
	for _, c := range s.courses {
		rows = append(rows, table.Row{
			c.Code,
			styles.TruncateString(c.Name, 34),
			fmt.Sprintf("%d", c.CreditHours),
			fmt.Sprintf("%d/%d", c.AvailableSeats, c.TotalSeats),
		})
	}

	if !s.ready {
		s.table = table.New(
			table.WithColumns(catalogColumns()),
			table.WithFocused(true),
			table.WithHeight(12),
		)
		s.ready = true
	}
	cursor := s.table.Cursor()
	s.table.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor >= 0 {
		s.table.SetCursor(cursor)
	}
	return s
}

func (s courseTableState) setSize(width, height int) courseTableState {
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

func (s courseTableState) selected() (domain.Course, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.courses) {
		return domain.Course{}, false
	}
	return s.courses[i], true
}

func (m Model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m.homeScreen(), nil

	case key.Matches(msg, m.keys.Sort):
		if m.courses.sort == registry.SortByName {
			m.courses.sort = registry.SortByCode
		} else {
			m.courses.sort = registry.SortByName
		}
		m.courses = m.courses.reload(m)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if err := m.svc.Reload(); err != nil {
			m = m.toastErr(err)
			return m, toaster.ScheduleDismiss(toastDuration)
		}
		return m, nil

	case key.Matches(msg, m.keys.Enroll):
		course, ok := m.courses.selected()
		if !ok {
			return m, nil
		}
		if m.session.IsAdmin() {
			// Admins edit rather than enroll.
			m.courseForm = newCourseForm(course.Code)
			m.courseForm = m.courseForm.prefill(course)
			return m.goTo(screenCourseForm), nil
		}
		if err := m.svc.Enroll(m.session, course.Code); err != nil {
			m = m.toastErr(err)
		} else {
			m = m.toast("enrolled in "+course.Code, toaster.StyleSuccess)
			m.catalog.Invalidate(m.eventsCtx)
			m.courses = m.courses.reload(m)
		}
		return m, toaster.ScheduleDismiss(toastDuration)

	case key.Matches(msg, m.keys.Undo) && !m.session.IsAdmin():
		return m.doUndo()

	case key.Matches(msg, m.keys.Delete) && m.session.IsAdmin():
		course, ok := m.courses.selected()
		if !ok {
			return m, nil
		}
		if err := m.svc.DeleteCourse(m.session, course.Code); err != nil {
			m = m.toastErr(err)
		} else {
			m = m.toast(course.Code+" deleted", toaster.StyleSuccess)
			m.catalog.Invalidate(m.eventsCtx)
			m.courses = m.courses.reload(m)
		}
		return m, toaster.ScheduleDismiss(toastDuration)

	case key.Matches(msg, m.keys.Enter):
		course, ok := m.courses.selected()
		if !ok {
			return m, nil
		}
		m.detail = detailState{
			course:  course,
			prereqs: m.svc.Prerequisites(course.Code),
		}
		return m.goTo(screenCourseDetail), nil
	}

	var cmd tea.Cmd
	m.courses.table, cmd = m.courses.table.Update(msg)
	return m, cmd
}

func (m Model) viewCatalog() string {
	order := "by code"
	if m.courses.sort == registry.SortByName {
		order = "by name"
	}
	hint := "j/k move · s sort · e enroll · enter details · r reload · esc back"
	if m.session.IsAdmin() {
		hint = "j/k move · s sort · e edit · d delete · r reload · esc back"
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Course Catalog")+styles.Subtitle.Render("  ("+order+")"),
		"",
		m.courses.table.View(),
		"",
		styles.HelpHint.Render(hint),
	))
}

// detailState shows one course with its prerequisites.
type detailState struct {
	course  domain.Course
	prereqs []string
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Enter):
		return m.goTo(screenCatalog), nil
	case key.Matches(msg, m.keys.Enroll) && !m.session.IsAdmin():
		if err := m.svc.Enroll(m.session, m.detail.course.Code); err != nil {
			m = m.toastErr(err)
		} else {
			m = m.toast("enrolled in "+m.detail.course.Code, toaster.StyleSuccess)
			m.catalog.Invalidate(m.eventsCtx)
			m.courses = m.courses.reload(m)
		}
		return m, toaster.ScheduleDismiss(toastDuration)
	}
	return m, nil
}

func (m Model) viewDetail() string {
	c := m.detail.course
	prereqs := "none"
	if len(m.detail.prereqs) > 0 {
		prereqs = strings.Join(m.detail.prereqs, ", ")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(c.Code+" — "+c.Name),
		"",
		fmt.Sprintf("Credit hours:   %d", c.CreditHours),
		fmt.Sprintf("Seats:          %d of %d available", c.AvailableSeats, c.TotalSeats),
		"Prerequisites:  "+prereqs,
		"",
		styles.HelpHint.Render("e enroll · esc back"),
	)
	return lipgloss.NewStyle().Padding(1, 2).Render(styles.Box.Render(body))
}

// myCoursesState lists the signed-in student's enrollments.
type myCoursesState struct {
	courses []domain.Course
	err     error
}

func (s myCoursesState) reload(m Model) myCoursesState {
	s.courses, s.err = m.svc.MyEnrollments(m.session)
	return s
}

func (m Model) updateMyCourses(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m.homeScreen(), nil
	case key.Matches(msg, m.keys.Undo):
		return m.doUndo()
	}
	return m, nil
}

func (m Model) viewMyCourses() string {
	lines := []string{styles.Title.Render("My Enrollments"), ""}
	switch {
	case m.myCourses.err != nil:
		lines = append(lines, styles.ErrorText.Render(m.myCourses.err.Error()))
	case len(m.myCourses.courses) == 0:
		lines = append(lines, styles.Subtitle.Render("no enrollments yet"))
	default:
		for _, c := range m.myCourses.courses {
			lines = append(lines, fmt.Sprintf("%-10s %-34s %d cr", c.Code, styles.TruncateString(c.Name, 34), c.CreditHours))
		}
	}
	lines = append(lines, "", styles.HelpHint.Render("u undo last · esc back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
