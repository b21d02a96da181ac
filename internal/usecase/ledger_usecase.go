package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/infrastructure/metrics"
)

// LedgerUseCase is the ledger engine: the only component allowed to
// mutate account totals. Every command runs as one database transaction
// spanning "lock account -> compute new totals -> persist entry ->
// persist account", so a command either commits in full or leaves
// nothing behind.
type LedgerUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	paymentRepo     PaymentRepository
	idGen           IDGenerator
	retrier         Retrier
	metrics         *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	paymentRepo PaymentRepository,
	idGen IDGenerator,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
		idGen:           idGen,
	}
}

// WithRetrier makes engine commands retry on transient storage errors.
func (uc *LedgerUseCase) WithRetrier(retrier Retrier) *LedgerUseCase {
	uc.retrier = retrier
	return uc
}

// WithMetrics enables command metrics.
func (uc *LedgerUseCase) WithMetrics(m *metrics.Metrics) *LedgerUseCase {
	uc.metrics = m
	return uc
}

func (uc *LedgerUseCase) run(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

// RecordTransactionInput represents input for recording a transaction.
type RecordTransactionInput struct {
	Kind      domain.TransactionKind
	AccountID string
	Items     []domain.LineItem
	PaidNow   decimal.Decimal
	Date      *time.Time
	Notes     string
}

// RecordTransaction posts a sale (sell) or purchase (buy) against an
// account: the bill total raises the account's activity, paidNow raises
// its paid total, and the entry captures the remaining balance right
// after the effect was applied. paidNow may exceed the bill.
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateNotes(input.Notes); err != nil {
		return nil, err
	}

	totalBill, items := domain.ComputeLineTotals(input.Items)

	now := time.Now().UTC()

	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	transaction := &domain.Transaction{
		ID:        uc.idGen.Generate(),
		Kind:      input.Kind,
		AccountID: input.AccountID,
		Date:      date,
		Items:     items,
		TotalBill: totalBill,
		PaidNow:   input.PaidNow,
		Notes:     input.Notes,
		CreatedAt: now,
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	err := uc.run(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
		if err != nil {
			return err
		}

		if account.Kind != input.Kind.AccountKind() {
			return domain.ErrAccountKindMatch
		}

		transaction.RemainingAfter = account.ApplyBill(totalBill, input.PaidNow)

		if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
			return err
		}

		err = uc.accountRepo.UpdateTotals(ctx, tx,
			account.ID, account.TotalActivity, account.TotalPaid, account.TotalRemaining, now)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsRecorded.Inc()
		uc.metrics.BillAmount.Observe(totalBill.InexactFloat64())
		uc.metrics.CommandDuration.WithLabelValues("record_transaction").Observe(time.Since(now).Seconds())
	}

	return transaction, nil
}

// RecordPaymentInput represents input for recording a payment.
type RecordPaymentInput struct {
	Kind      domain.PaymentKind
	AccountID string
	Amount    decimal.Decimal
	Date      *time.Time
	Notes     string
}

// RecordPayment posts money received from a buyer or paid to a seller.
// There is no upper clamp: paying more than the outstanding balance is a
// legal credit state, not an error.
func (uc *LedgerUseCase) RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	if err := domain.ValidateNotes(input.Notes); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	payment := &domain.Payment{
		ID:        uc.idGen.Generate(),
		Kind:      input.Kind,
		AccountID: input.AccountID,
		Date:      date,
		Amount:    input.Amount,
		Notes:     input.Notes,
		CreatedAt: now,
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	err := uc.run(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
		if err != nil {
			return err
		}

		if account.Kind != input.Kind.AccountKind() {
			return domain.ErrAccountKindMatch
		}

		payment.RemainingAfter = account.ApplyPayment(input.Amount)

		if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}

		err = uc.accountRepo.UpdateTotals(ctx, tx,
			account.ID, account.TotalActivity, account.TotalPaid, account.TotalRemaining, now)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsRecorded.Inc()
		uc.metrics.CommandDuration.WithLabelValues("record_payment").Observe(time.Since(now).Seconds())
	}

	return payment, nil
}

// ReverseTransaction deletes a transaction entry and undoes exactly its
// original effect on the owning account, no matter how many entries were
// recorded afterward. Snapshots stored on later entries are left as
// written: only the live totals are corrected.
func (uc *LedgerUseCase) ReverseTransaction(ctx context.Context, entryID string) error {
	start := time.Now().UTC()

	err := uc.run(ctx, func() error {
		transaction, err := uc.transactionRepo.GetByID(ctx, entryID)
		if err != nil {
			return err
		}

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, transaction.AccountID)
		if err != nil {
			return err
		}

		// Deleting under the account lock makes a concurrent reversal of
		// the same entry fail here instead of subtracting twice.
		if err := uc.transactionRepo.Delete(ctx, tx, entryID); err != nil {
			return err
		}

		account.ReverseBill(transaction.TotalBill, transaction.PaidNow)

		err = uc.accountRepo.UpdateTotals(ctx, tx,
			account.ID, account.TotalActivity, account.TotalPaid, account.TotalRemaining, start)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsReversed.Inc()
		uc.metrics.CommandDuration.WithLabelValues("reverse_transaction").Observe(time.Since(start).Seconds())
	}

	return nil
}

// ReversePayment deletes a payment entry and undoes its effect on the
// owning account's totals.
func (uc *LedgerUseCase) ReversePayment(ctx context.Context, entryID string) error {
	start := time.Now().UTC()

	err := uc.run(ctx, func() error {
		payment, err := uc.paymentRepo.GetByID(ctx, entryID)
		if err != nil {
			return err
		}

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, payment.AccountID)
		if err != nil {
			return err
		}

		if err := uc.paymentRepo.Delete(ctx, tx, entryID); err != nil {
			return err
		}

		account.ReversePayment(payment.Amount)

		err = uc.accountRepo.UpdateTotals(ctx, tx,
			account.ID, account.TotalActivity, account.TotalPaid, account.TotalRemaining, start)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsReversed.Inc()
		uc.metrics.CommandDuration.WithLabelValues("reverse_payment").Observe(time.Since(start).Seconds())
	}

	return nil
}
