package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:             "acc-1",
		Kind:           domain.AccountKindBuyer,
		Name:           "Ali",
		Phone:          "01711111111",
		TotalActivity:  decimal.RequireFromString("350"),
		TotalPaid:      decimal.RequireFromString("100"),
		TotalRemaining: decimal.RequireFromString("250"),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Kind != "buyer" || !resp.TotalRemaining.Equal(decimal.RequireFromString("250")) {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestTransactionFromDomain(t *testing.T) {
	now := time.Now()
	transaction := &domain.Transaction{
		ID:        "txn-1",
		Kind:      domain.TransactionKindSell,
		AccountID: "acc-1",
		Date:      now,
		Items: []domain.LineItem{
			{
				Name:      "rice",
				Quantity:  decimal.RequireFromString("3"),
				UnitPrice: decimal.RequireFromString("100"),
				Total:     decimal.RequireFromString("300"),
			},
		},
		TotalBill:      decimal.RequireFromString("300"),
		PaidNow:        decimal.RequireFromString("100"),
		RemainingAfter: decimal.RequireFromString("200"),
		CreatedAt:      now,
	}

	resp := TransactionFromDomain(transaction)
	if resp.ID != transaction.ID || resp.Kind != "sell" {
		t.Fatalf("unexpected transaction response: %+v", resp)
	}
	if len(resp.Items) != 1 || !resp.Items[0].Total.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}

	list := TransactionsFromDomain([]*domain.Transaction{transaction})
	if len(list) != 1 || list[0].ID != transaction.ID {
		t.Fatalf("TransactionsFromDomain returned %+v", list)
	}
}

func TestPaymentFromDomain(t *testing.T) {
	now := time.Now()
	payment := &domain.Payment{
		ID:             "pay-1",
		Kind:           domain.PaymentKindReceive,
		AccountID:      "acc-1",
		Date:           now,
		Amount:         decimal.RequireFromString("150"),
		RemainingAfter: decimal.RequireFromString("50"),
		CreatedAt:      now,
	}

	resp := PaymentFromDomain(payment)
	if resp.ID != payment.ID || resp.Kind != "receive" || !resp.Amount.Equal(decimal.RequireFromString("150")) {
		t.Fatalf("unexpected payment response: %+v", resp)
	}

	list := PaymentsFromDomain([]*domain.Payment{payment})
	if len(list) != 1 || list[0].ID != payment.ID {
		t.Fatalf("PaymentsFromDomain returned %+v", list)
	}
}

func TestStatementFromUseCase(t *testing.T) {
	lines := []usecase.StatementLine{
		{Type: usecase.EntryTypeTransaction, Transaction: &domain.Transaction{ID: "txn-1"}},
		{Type: usecase.EntryTypePayment, Payment: &domain.Payment{ID: "pay-1"}},
	}

	resp := StatementFromUseCase(lines)
	if len(resp) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(resp))
	}
	if resp[0].Type != "transaction" || resp[0].Transaction == nil || resp[0].Payment != nil {
		t.Fatalf("unexpected first line: %+v", resp[0])
	}
	if resp[1].Type != "payment" || resp[1].Payment == nil || resp[1].Transaction != nil {
		t.Fatalf("unexpected second line: %+v", resp[1])
	}
}

func TestSummaryFromUseCase(t *testing.T) {
	summary := &usecase.LedgerSummary{
		Receivable:       decimal.RequireFromString("500"),
		Payable:          decimal.RequireFromString("120"),
		BuyerCount:       4,
		SellerCount:      2,
		RecentBillCount:  3,
		RecentBillAmount: decimal.RequireFromString("900"),
	}

	resp := SummaryFromUseCase(summary)
	if !resp.Receivable.Equal(summary.Receivable) || resp.SellerCount != 2 || resp.RecentBillCount != 3 {
		t.Fatalf("unexpected summary response: %+v", resp)
	}
}
