package app

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/registrar/internal/ui/styles"
	"github.com/zjrosen/registrar/internal/ui/toaster"
)

func newPaymentForm() formState {
	return newFormState("Pay Fees", []fieldSpec{
		{label: "Transaction ID", placeholder: "bank reference"},
		{label: "Amount", placeholder: "2500"},
	})
}

func newLookupForm() formState {
	return newFormState("Payment Status", []fieldSpec{
		{label: "Transaction ID", placeholder: "bank reference"},
	})
}

func (m Model) updatePayment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		return m.homeScreen(), nil
	}

	if m.screen == screenPayment {
		var submit bool
		m.payment, submit = m.payment.update(msg, m.formKeys())
		if !submit {
			return m, nil
		}
		amount, err := strconv.ParseFloat(m.payment.value(1), 64)
		if err != nil {
			m.payment.errMsg = "amount must be a number"
			return m, nil
		}
		payment, err := m.svc.Pay(m.session, m.payment.value(0), amount)
		if err != nil {
			m.payment.errMsg = err.Error()
			return m, nil
		}
		m = m.toast("payment recorded, receipt "+payment.ReceiptID, toaster.StyleSuccess)
		m = m.homeScreen()
		return m, toaster.ScheduleDismiss(toastDuration)
	}

	var submit bool
	m.lookup, submit = m.lookup.update(msg, m.formKeys())
	if !submit {
		return m, nil
	}
	payment, err := m.svc.PaymentStatus(m.session, m.lookup.value(0))
	if err != nil {
		m.lookup.errMsg = err.Error()
		m.paymentOut = ""
		return m, nil
	}
	m.lookup.errMsg = ""
	m.paymentOut = fmt.Sprintf(
		"%s — %.2f by %s, %s (receipt %s)",
		payment.TransactionID, payment.Amount, payment.Username, payment.Status, payment.ReceiptID,
	)
	return m, nil
}

func (m Model) viewPayment() string {
	if m.screen == screenPayment {
		return m.payment.view()
	}
	body := m.lookup.view()
	if m.paymentOut != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, styles.SuccessText.Render("  "+m.paymentOut))
	}
	return body
}
