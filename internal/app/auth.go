package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/registrar/internal/ui/toaster"
)

func newLoginForm() formState {
	return newFormState("Sign in", []fieldSpec{
		{label: "Username", placeholder: "username"},
		{label: "Password", placeholder: "password", secret: true},
	})
}

func newRegisterForm() formState {
	return newFormState("Register", []fieldSpec{
		{label: "Username", placeholder: "no spaces"},
		{label: "Password", placeholder: "at least 3 characters", secret: true},
		{label: "Full name", placeholder: "Jane Doe"},
		{label: "Roll number", placeholder: "02-134242-001"},
	})
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		return m.homeScreen(), nil
	}

	if m.screen == screenLogin {
		var submit bool
		m.login, submit = m.login.update(msg, m.formKeys())
		if !submit {
			return m, nil
		}
		sess, err := m.svc.Login(m.login.value(0), m.login.value(1))
		if err != nil {
			m.login.errMsg = "invalid username or password"
			return m, nil
		}
		m.session = sess
		m = m.toast("welcome, "+sess.FullName, toaster.StyleSuccess)
		m = m.homeScreen()
		return m, toaster.ScheduleDismiss(toastDuration)
	}

	var submit bool
	m.register, submit = m.register.update(msg, m.formKeys())
	if !submit {
		return m, nil
	}
	err := m.svc.Register(
		m.register.value(0),
		m.register.value(1),
		m.register.value(2),
		m.register.value(3),
	)
	if err != nil {
		m.register.errMsg = err.Error()
		return m, nil
	}
	m = m.toast("registered, you can sign in now", toaster.StyleSuccess)
	m = m.homeScreen()
	return m, toaster.ScheduleDismiss(toastDuration)
}

func (m Model) viewAuth() string {
	if m.screen == screenLogin {
		return m.login.view()
	}
	return m.register.view()
}
