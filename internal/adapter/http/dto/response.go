package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	TotalActivity  decimal.Decimal `json:"total_activity"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Kind:           string(a.Kind),
		Name:           a.Name,
		Phone:          a.Phone,
		TotalActivity:  a.TotalActivity,
		TotalPaid:      a.TotalPaid,
		TotalRemaining: a.TotalRemaining,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// LineItemResponse represents one bill line in API responses.
type LineItemResponse struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// TransactionResponse represents a transaction entry in API responses.
type TransactionResponse struct {
	ID             string             `json:"id"`
	Kind           string             `json:"kind"`
	AccountID      string             `json:"account_id"`
	Date           time.Time          `json:"date"`
	Items          []LineItemResponse `json:"items"`
	TotalBill      decimal.Decimal    `json:"total_bill"`
	PaidNow        decimal.Decimal    `json:"paid_now"`
	RemainingAfter decimal.Decimal    `json:"remaining_after"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	items := make([]LineItemResponse, len(t.Items))
	for i, item := range t.Items {
		items[i] = LineItemResponse{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		}
	}

	return &TransactionResponse{
		ID:             t.ID,
		Kind:           string(t.Kind),
		AccountID:      t.AccountID,
		Date:           t.Date,
		Items:          items,
		TotalBill:      t.TotalBill,
		PaidNow:        t.PaidNow,
		RemainingAfter: t.RemainingAfter,
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// PaymentResponse represents a payment entry in API responses.
type PaymentResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	AccountID      string          `json:"account_id"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	RemainingAfter decimal.Decimal `json:"remaining_after"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PaymentFromDomain converts domain payment to response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:             p.ID,
		Kind:           string(p.Kind),
		AccountID:      p.AccountID,
		Date:           p.Date,
		Amount:         p.Amount,
		RemainingAfter: p.RemainingAfter,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// StatementLineResponse is one row of a merged account statement.
type StatementLineResponse struct {
	Type        string               `json:"type"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Payment     *PaymentResponse     `json:"payment,omitempty"`
}

// StatementFromUseCase converts statement lines to responses.
func StatementFromUseCase(lines []usecase.StatementLine) []StatementLineResponse {
	result := make([]StatementLineResponse, len(lines))
	for i, line := range lines {
		out := StatementLineResponse{Type: string(line.Type)}
		if line.Transaction != nil {
			out.Transaction = TransactionFromDomain(line.Transaction)
		}
		if line.Payment != nil {
			out.Payment = PaymentFromDomain(line.Payment)
		}
		result[i] = out
	}
	return result
}

// SummaryResponse represents the dashboard summary.
type SummaryResponse struct {
	Receivable       decimal.Decimal `json:"receivable"`
	Payable          decimal.Decimal `json:"payable"`
	BuyerCount       int64           `json:"buyer_count"`
	SellerCount      int64           `json:"seller_count"`
	RecentBillCount  int64           `json:"today_bill_count"`
	RecentBillAmount decimal.Decimal `json:"today_bill_amount"`
}

// SummaryFromUseCase converts a ledger summary to a response.
func SummaryFromUseCase(s *usecase.LedgerSummary) *SummaryResponse {
	return &SummaryResponse{
		Receivable:       s.Receivable,
		Payable:          s.Payable,
		BuyerCount:       s.BuyerCount,
		SellerCount:      s.SellerCount,
		RecentBillCount:  s.RecentBillCount,
		RecentBillAmount: s.RecentBillAmount,
	}
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ListTransactionsResponse wraps a page of transaction entries.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ListPaymentsResponse wraps a page of payment entries.
type ListPaymentsResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int64              `json:"total"`
}

// StatementResponse wraps a merged account statement.
type StatementResponse struct {
	AccountID string                  `json:"account_id"`
	Lines     []StatementLineResponse `json:"lines"`
}

// ConsistencyResponse reports the ledger-wide balance identity check.
type ConsistencyResponse struct {
	Consistent bool  `json:"consistent"`
	Imbalanced int64 `json:"imbalanced_accounts"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
