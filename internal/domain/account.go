package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the aggregate balance record for one buyer or one seller.
//
// TotalRemaining is the signed outstanding balance and must equal
// TotalActivity - TotalPaid after every committed ledger command. For a
// buyer it is the amount owed to the business; for a seller it is the
// amount the business owes. Negative values are legal on both sides
// (over-payment is a credit state, not an error).
type Account struct {
	ID             string
	Kind           AccountKind
	Name           string
	Phone          string
	TotalActivity  decimal.Decimal
	TotalPaid      decimal.Decimal
	TotalRemaining decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplyBill posts a transaction's effect to the totals and returns the
// new remaining balance.
func (a *Account) ApplyBill(totalBill, paidNow decimal.Decimal) decimal.Decimal {
	a.TotalActivity = a.TotalActivity.Add(totalBill)
	a.TotalPaid = a.TotalPaid.Add(paidNow)
	a.TotalRemaining = a.TotalRemaining.Add(totalBill).Sub(paidNow)

	return a.TotalRemaining
}

// ReverseBill undoes exactly the effect of a prior ApplyBill with the
// same arguments, regardless of operations applied in between.
func (a *Account) ReverseBill(totalBill, paidNow decimal.Decimal) decimal.Decimal {
	a.TotalActivity = a.TotalActivity.Sub(totalBill)
	a.TotalPaid = a.TotalPaid.Sub(paidNow)
	a.TotalRemaining = a.TotalRemaining.Sub(totalBill).Add(paidNow)

	return a.TotalRemaining
}

// ApplyPayment posts a standalone payment and returns the new remaining
// balance. Payments may exceed the outstanding balance; the remaining
// then goes negative.
func (a *Account) ApplyPayment(amount decimal.Decimal) decimal.Decimal {
	a.TotalPaid = a.TotalPaid.Add(amount)
	a.TotalRemaining = a.TotalRemaining.Sub(amount)

	return a.TotalRemaining
}

// ReversePayment undoes exactly the effect of a prior ApplyPayment with
// the same amount.
func (a *Account) ReversePayment(amount decimal.Decimal) decimal.Decimal {
	a.TotalPaid = a.TotalPaid.Sub(amount)
	a.TotalRemaining = a.TotalRemaining.Add(amount)

	return a.TotalRemaining
}

// Balanced reports whether the totals satisfy the ledger identity
// remaining == activity - paid.
func (a *Account) Balanced() bool {
	return a.TotalRemaining.Equal(a.TotalActivity.Sub(a.TotalPaid))
}
