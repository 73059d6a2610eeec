package store

import "github.com/zjrosen/registrar/internal/domain"

// PaymentTable is an unordered store of payment records keyed by
// transaction id. Records are immutable once inserted and live only for
// the process session.
type PaymentTable struct {
	payments map[string]domain.Payment
}

// NewPaymentTable creates an empty payment table.
func NewPaymentTable() *PaymentTable {
	return &PaymentTable{payments: make(map[string]domain.Payment)}
}

// Len returns the number of records.
func (t *PaymentTable) Len() int {
	return len(t.payments)
}

// Put inserts a payment keyed by its transaction id.
// Returns false when the transaction id is already present.
func (t *PaymentTable) Put(p domain.Payment) bool {
	if _, exists := t.payments[p.TransactionID]; exists {
		return false
	}
	t.payments[p.TransactionID] = p
	return true
}

// Get returns the payment for the transaction id.
func (t *PaymentTable) Get(transactionID string) (domain.Payment, bool) {
	p, ok := t.payments[transactionID]
	return p, ok
}
