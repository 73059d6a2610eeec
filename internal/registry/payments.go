package registry

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/registrar/internal/domain"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/pubsub"
)

// Pay records a payment for the session's user under the caller-supplied
// transaction id, generating a receipt id. Records are immutable once
// inserted and live only for the process session; they are not persisted.
func (s *Service) Pay(sess Session, transactionID string, amount float64) (domain.Payment, error) {
	if !sess.Authenticated() {
		return domain.Payment{}, domain.ErrPermissionDenied
	}
	if err := domain.ValidatePayment(transactionID, amount); err != nil {
		return domain.Payment{}, err
	}

	payment := domain.Payment{
		TransactionID: transactionID,
		ReceiptID:     uuid.NewString(),
		Username:      sess.Username,
		Amount:        amount,
		Status:        domain.PaymentCompleted,
		RecordedAt:    time.Now(),
	}
	if !s.payments.Put(payment) {
		return domain.Payment{}, fmt.Errorf("transaction id %q: %w", transactionID, domain.ErrAlreadyExists)
	}

	s.publish(pubsub.CreatedEvent, "payment", transactionID)
	log.Info(log.CatRegistry, "payment recorded",
		"transaction", transactionID, "username", sess.Username, "amount", amount)
	return payment, nil
}

// PaymentStatus returns the payment for the transaction id. Visibility
// is restricted to the paying user and administrators.
func (s *Service) PaymentStatus(sess Session, transactionID string) (domain.Payment, error) {
	if !sess.Authenticated() {
		return domain.Payment{}, domain.ErrPermissionDenied
	}
	if transactionID == "" {
		return domain.Payment{}, domain.NewValidationError("transaction id", "cannot be empty")
	}

	payment, ok := s.payments.Get(transactionID)
	if !ok {
		return domain.Payment{}, fmt.Errorf("payment %q: %w", transactionID, domain.ErrNotFound)
	}
	if !sess.IsAdmin() && payment.Username != sess.Username {
		return domain.Payment{}, domain.ErrPermissionDenied
	}
	return payment, nil
}
