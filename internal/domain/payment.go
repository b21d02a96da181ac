package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a standalone money movement: received from a buyer or paid
// out to a seller, not tied to any particular transaction.
//
// RemainingAfter carries the same write-time snapshot contract as
// Transaction.RemainingAfter.
type Payment struct {
	ID             string
	Kind           PaymentKind
	AccountID      string
	Date           time.Time
	Amount         decimal.Decimal
	RemainingAfter decimal.Decimal
	Notes          string
	CreatedAt      time.Time
}

// Validate checks the payment's structural invariants.
func (p *Payment) Validate() error {
	if !p.Kind.Valid() {
		return ErrInvalidPaymentKind
	}

	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
