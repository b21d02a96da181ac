package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one line of goods on a transaction.
type LineItem struct {
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Transaction is a recorded sale to a buyer or purchase from a seller.
//
// RemainingAfter is a snapshot of the owning account's remaining balance
// immediately after this transaction was applied. It is fixed at write
// time and never recomputed on read.
type Transaction struct {
	ID             string
	Kind           TransactionKind
	AccountID      string
	Date           time.Time
	Items          []LineItem
	TotalBill      decimal.Decimal
	PaidNow        decimal.Decimal
	RemainingAfter decimal.Decimal
	Notes          string
	CreatedAt      time.Time
}

// ComputeLineTotals fills each item's Total from quantity and unit price
// and returns the bill total.
func ComputeLineTotals(items []LineItem) (decimal.Decimal, []LineItem) {
	total := decimal.Zero

	out := make([]LineItem, len(items))
	for i, item := range items {
		item.Total = item.Quantity.Mul(item.UnitPrice)
		out[i] = item
		total = total.Add(item.Total)
	}

	return total, out
}

// Validate checks the transaction's structural invariants.
func (t *Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidTransactionKind
	}

	if len(t.Items) == 0 {
		return ErrNoItems
	}

	if len(t.Items) > MaxItemsPerBill {
		return ErrTooManyItems
	}

	for _, item := range t.Items {
		if err := ValidateLineItem(item); err != nil {
			return err
		}
	}

	if t.PaidNow.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}
