package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Kind  string `json:"kind"  validate:"required,oneof=buyer seller"`
	Name  string `json:"name"  validate:"required,max=255"`
	Phone string `json:"phone" validate:"max=32"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Kind:  domain.AccountKind(r.Kind),
		Name:  r.Name,
		Phone: r.Phone,
	}
}

// UpdateAccountRequest represents a request to update account details.
// Omitted fields keep their stored values.
type UpdateAccountRequest struct {
	Name  string `json:"name"  validate:"max=255"`
	Phone string `json:"phone" validate:"max=32"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput(id string) usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		ID:    id,
		Name:  r.Name,
		Phone: r.Phone,
	}
}

// LineItemRequest represents one bill line.
type LineItemRequest struct {
	Name      string          `json:"name"       validate:"required,max=255"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// RecordTransactionRequest represents a request to record a transaction.
type RecordTransactionRequest struct {
	Kind      string            `json:"kind"       validate:"required,oneof=sell buy"`
	AccountID string            `json:"account_id" validate:"required"`
	Items     []LineItemRequest `json:"items"      validate:"required,min=1,max=200,dive"`
	PaidNow   decimal.Decimal   `json:"paid_now"`
	Date      *time.Time        `json:"date,omitempty"`
	Notes     string            `json:"notes"      validate:"max=2000"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordTransactionRequest) ToUseCaseInput() usecase.RecordTransactionInput {
	items := make([]domain.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return usecase.RecordTransactionInput{
		Kind:      domain.TransactionKind(r.Kind),
		AccountID: r.AccountID,
		Items:     items,
		PaidNow:   r.PaidNow,
		Date:      r.Date,
		Notes:     r.Notes,
	}
}

// RecordPaymentRequest represents a request to record a payment.
type RecordPaymentRequest struct {
	Kind      string          `json:"kind"       validate:"required,oneof=receive pay"`
	AccountID string          `json:"account_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"     validate:"required"`
	Date      *time.Time      `json:"date,omitempty"`
	Notes     string          `json:"notes"      validate:"max=2000"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordPaymentRequest) ToUseCaseInput() usecase.RecordPaymentInput {
	return usecase.RecordPaymentInput{
		Kind:      domain.PaymentKind(r.Kind),
		AccountID: r.AccountID,
		Amount:    r.Amount,
		Date:      r.Date,
		Notes:     r.Notes,
	}
}
