package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
	"github.com/saklain/khatabook/internal/usecase/mocks"
)

type accountFixture struct {
	uc           *usecase.AccountUseCase
	ledger       *usecase.LedgerUseCase
	accounts     *mocks.MockAccountRepository
	transactions *mocks.MockTransactionRepository
	payments     *mocks.MockPaymentRepository
}

func newAccountFixture() *accountFixture {
	accounts := mocks.NewMockAccountRepository()
	transactions := mocks.NewMockTransactionRepository()
	payments := mocks.NewMockPaymentRepository()
	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	return &accountFixture{
		uc:           usecase.NewAccountUseCase(txManager, accounts, transactions, payments, idGen),
		ledger:       usecase.NewLedgerUseCase(txManager, accounts, transactions, payments, idGen),
		accounts:     accounts,
		transactions: transactions,
		payments:     payments,
	}
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	f := newAccountFixture()

	account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Kind:  domain.AccountKindBuyer,
		Name:  "  Ali  ",
		Phone: "01711000000",
	})
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	if account.Name != "Ali" {
		t.Errorf("Name = %q, want %q", account.Name, "Ali")
	}
	if account.ID == "" {
		t.Error("expected generated ID")
	}
	if !account.TotalActivity.IsZero() || !account.TotalPaid.IsZero() || !account.TotalRemaining.IsZero() {
		t.Errorf("new account totals not zero: %s/%s/%s",
			account.TotalActivity, account.TotalPaid, account.TotalRemaining)
	}

	stored, err := f.accounts.GetByID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("stored account missing: %v", err)
	}
	if stored.Kind != domain.AccountKindBuyer {
		t.Errorf("Kind = %s, want %s", stored.Kind, domain.AccountKindBuyer)
	}
}

func TestAccountUseCase_CreateAccount_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateAccountInput
		wantErr error
	}{
		{
			name:    "invalid kind",
			input:   usecase.CreateAccountInput{Kind: domain.AccountKind("vendor"), Name: "Ali"},
			wantErr: domain.ErrInvalidAccountKind,
		},
		{
			name:    "empty name",
			input:   usecase.CreateAccountInput{Kind: domain.AccountKindBuyer, Name: "   "},
			wantErr: domain.ErrInvalidAccountName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccountFixture()

			_, err := f.uc.CreateAccount(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateAccount() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAccountUseCase_CreateAccount_DuplicateName(t *testing.T) {
	f := newAccountFixture()

	if _, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Kind: domain.AccountKindBuyer,
		Name: "Ali",
	}); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	_, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Kind: domain.AccountKindBuyer,
		Name: "Ali",
	})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Errorf("CreateAccount() error = %v, want %v", err, domain.ErrDuplicateName)
	}

	// The same name under the other kind is a different khata.
	if _, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Kind: domain.AccountKindSeller,
		Name: "Ali",
	}); err != nil {
		t.Errorf("CreateAccount() with other kind error = %v", err)
	}
}

func TestAccountUseCase_GetAccount_NotFound(t *testing.T) {
	f := newAccountFixture()

	_, err := f.uc.GetAccount(context.Background(), "missing")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("GetAccount() error = %v, want %v", err, domain.ErrAccountNotFound)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	f := newAccountFixture()

	for _, seed := range []struct {
		kind domain.AccountKind
		name string
	}{
		{domain.AccountKindBuyer, "Ali"},
		{domain.AccountKindBuyer, "Rahim"},
		{domain.AccountKindSeller, "Karim Traders"},
	} {
		if _, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
			Kind: seed.kind,
			Name: seed.name,
		}); err != nil {
			t.Fatalf("CreateAccount(%s) error = %v", seed.name, err)
		}
	}

	all, err := f.uc.ListAccounts(context.Background(), usecase.ListAccountsInput{})
	if err != nil {
		t.Fatalf("ListAccounts() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}

	buyer := domain.AccountKindBuyer
	buyers, err := f.uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Kind: &buyer})
	if err != nil {
		t.Fatalf("ListAccounts(buyer) error = %v", err)
	}
	if len(buyers) != 2 {
		t.Errorf("len(buyers) = %d, want 2", len(buyers))
	}
	for _, acc := range buyers {
		if acc.Kind != domain.AccountKindBuyer {
			t.Errorf("unexpected kind %s in buyer listing", acc.Kind)
		}
	}

	bad := domain.AccountKind("vendor")
	if _, err := f.uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Kind: &bad}); !errors.Is(err, domain.ErrInvalidAccountKind) {
		t.Errorf("ListAccounts(vendor) error = %v, want %v", err, domain.ErrInvalidAccountKind)
	}
}

func TestAccountUseCase_UpdateAccount(t *testing.T) {
	f := newAccountFixture()

	created, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Kind:  domain.AccountKindBuyer,
		Name:  "Ali",
		Phone: "01711000000",
	})
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	updated, err := f.uc.UpdateAccount(context.Background(), usecase.UpdateAccountInput{
		ID:   created.ID,
		Name: "Ali Hossain",
	})
	if err != nil {
		t.Fatalf("UpdateAccount() error = %v", err)
	}

	if updated.Name != "Ali Hossain" {
		t.Errorf("Name = %q, want %q", updated.Name, "Ali Hossain")
	}
	// Empty phone keeps the stored value.
	if updated.Phone != "01711000000" {
		t.Errorf("Phone = %q, want stored value kept", updated.Phone)
	}

	stored, err := f.accounts.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("stored account missing: %v", err)
	}
	if stored.Name != "Ali Hossain" {
		t.Errorf("stored Name = %q, want %q", stored.Name, "Ali Hossain")
	}
}

func TestAccountUseCase_UpdateAccount_NotFound(t *testing.T) {
	f := newAccountFixture()

	_, err := f.uc.UpdateAccount(context.Background(), usecase.UpdateAccountInput{
		ID:   "missing",
		Name: "Ali",
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("UpdateAccount() error = %v, want %v", err, domain.ErrAccountNotFound)
	}
}

func TestAccountUseCase_DeleteAccount_CascadesEntries(t *testing.T) {
	f := newAccountFixture()

	doomed, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Kind: domain.AccountKindBuyer,
		Name: "Ali",
	})
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	survivor, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Kind: domain.AccountKindBuyer,
		Name: "Rahim",
	})
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	for _, accountID := range []string{doomed.ID, survivor.ID} {
		if _, err := f.ledger.RecordTransaction(context.Background(), usecase.RecordTransactionInput{
			Kind:      domain.TransactionKindSell,
			AccountID: accountID,
			Items:     []domain.LineItem{{Name: "cloth", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)}},
		}); err != nil {
			t.Fatalf("RecordTransaction() error = %v", err)
		}
		if _, err := f.ledger.RecordPayment(context.Background(), usecase.RecordPaymentInput{
			Kind:      domain.PaymentKindReceive,
			AccountID: accountID,
			Amount:    decimal.NewFromInt(40),
		}); err != nil {
			t.Fatalf("RecordPayment() error = %v", err)
		}
	}

	if err := f.uc.DeleteAccount(context.Background(), doomed.ID); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}

	if _, err := f.uc.GetAccount(context.Background(), doomed.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("deleted account still retrievable, error = %v", err)
	}

	transactions, err := f.transactions.ListByAccount(context.Background(), doomed.ID, 100, 0)
	if err != nil {
		t.Fatalf("ListByAccount() error = %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("dangling transactions = %d, want 0", len(transactions))
	}

	payments, err := f.payments.ListByAccount(context.Background(), doomed.ID, 100, 0)
	if err != nil {
		t.Fatalf("ListByAccount() error = %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("dangling payments = %d, want 0", len(payments))
	}

	// The other account's khata is untouched.
	survTx, err := f.transactions.ListByAccount(context.Background(), survivor.ID, 100, 0)
	if err != nil {
		t.Fatalf("ListByAccount() error = %v", err)
	}
	survPay, err := f.payments.ListByAccount(context.Background(), survivor.ID, 100, 0)
	if err != nil {
		t.Fatalf("ListByAccount() error = %v", err)
	}
	if len(survTx) != 1 || len(survPay) != 1 {
		t.Errorf("survivor entries = %d/%d, want 1/1", len(survTx), len(survPay))
	}
}

func TestAccountUseCase_DeleteAccount_NotFound(t *testing.T) {
	f := newAccountFixture()

	err := f.uc.DeleteAccount(context.Background(), "missing")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("DeleteAccount() error = %v, want %v", err, domain.ErrAccountNotFound)
	}
}
