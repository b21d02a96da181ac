package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/saklain/khatabook/internal/domain"
)

// EntryType discriminates the two entry kinds in a merged statement.
type EntryType string

const (
	EntryTypeTransaction EntryType = "transaction"
	EntryTypePayment     EntryType = "payment"
)

// StatementLine is one row of an account statement: exactly one of
// Transaction or Payment is set, according to Type.
type StatementLine struct {
	Type        EntryType
	Transaction *domain.Transaction
	Payment     *domain.Payment
}

// StatementUseCase handles the read side of the ledger: individual
// entries, filtered listings and merged account statements. It never
// mutates anything.
type StatementUseCase struct {
	transactionRepo TransactionRepository
	paymentRepo     PaymentRepository
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(transactionRepo TransactionRepository, paymentRepo PaymentRepository) *StatementUseCase {
	return &StatementUseCase{
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
	}
}

// GetTransaction retrieves a transaction entry by ID.
func (uc *StatementUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// GetPayment retrieves a payment entry by ID.
func (uc *StatementUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListTransactionsInput represents input for listing transaction entries.
type ListTransactionsInput struct {
	AccountID string
	Kind      *domain.TransactionKind
	Limit     int
	Offset    int
}

// ListTransactions lists transaction entries. With an account ID the
// entries come back in statement order (date ascending then creation
// order); otherwise newest first, optionally filtered by kind.
func (uc *StatementUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit := clampLimit(input.Limit)

	if input.AccountID != "" {
		return uc.transactionRepo.ListByAccount(ctx, input.AccountID, limit, input.Offset)
	}

	return uc.transactionRepo.List(ctx, input.Kind, limit, input.Offset)
}

// ListPaymentsInput represents input for listing payment entries.
type ListPaymentsInput struct {
	AccountID string
	Kind      *domain.PaymentKind
	Limit     int
	Offset    int
}

// ListPayments lists payment entries, with the same ordering contract as
// ListTransactions.
func (uc *StatementUseCase) ListPayments(ctx context.Context, input ListPaymentsInput) ([]*domain.Payment, error) {
	limit := clampLimit(input.Limit)

	if input.AccountID != "" {
		return uc.paymentRepo.ListByAccount(ctx, input.AccountID, limit, input.Offset)
	}

	return uc.paymentRepo.List(ctx, input.Kind, limit, input.Offset)
}

// Statement merges an account's transactions and payments into one
// sequence ordered by date ascending, then creation order. The snapshot
// on each line is the remaining balance as of that entry's creation,
// exactly as stored.
func (uc *StatementUseCase) Statement(ctx context.Context, accountID string) ([]StatementLine, error) {
	transactions, err := uc.transactionRepo.ListByAccount(ctx, accountID, StatementFetchLimit, 0)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByAccount(ctx, accountID, StatementFetchLimit, 0)
	if err != nil {
		return nil, err
	}

	lines := make([]StatementLine, 0, len(transactions)+len(payments))
	for _, t := range transactions {
		lines = append(lines, StatementLine{Type: EntryTypeTransaction, Transaction: t})
	}
	for _, p := range payments {
		lines = append(lines, StatementLine{Type: EntryTypePayment, Payment: p})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		di, ci := lineTimes(lines[i])
		dj, cj := lineTimes(lines[j])

		if !di.Equal(dj) {
			return di.Before(dj)
		}

		return ci.Before(cj)
	})

	return lines, nil
}

func lineTimes(l StatementLine) (date, createdAt time.Time) {
	if l.Type == EntryTypePayment {
		return l.Payment.Date, l.Payment.CreatedAt
	}

	return l.Transaction.Date, l.Transaction.CreatedAt
}
