package domain

import "time"

// PaymentStatus is the lifecycle state of a payment record.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// MaxPaymentAmount is the largest accepted single payment.
const MaxPaymentAmount = 100000

// Payment is an immutable transaction record keyed by TransactionID.
// Payments live only for the process session; they are not persisted.
type Payment struct {
	TransactionID string
	ReceiptID     string
	Username      string
	Amount        float64
	Status        PaymentStatus
	RecordedAt    time.Time
}

// ValidatePayment checks the fields supplied when recording a payment.
func ValidatePayment(transactionID string, amount float64) error {
	if transactionID == "" {
		return NewValidationError("transaction id", "cannot be empty")
	}
	if amount <= 0 {
		return NewValidationError("amount", "must be a positive number")
	}
	if amount > MaxPaymentAmount {
		return NewValidationError("amount", "exceeds maximum limit")
	}
	return nil
}
