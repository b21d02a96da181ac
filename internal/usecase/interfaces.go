package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saklain/khatabook/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByName(ctx context.Context, kind domain.AccountKind, name string) (*domain.Account, error)
	// UpdateTotals persists the three cumulative totals inside the caller's
	// database transaction.
	UpdateTotals(ctx context.Context, tx Transaction, id string, activity, paid, remaining decimal.Decimal, updatedAt time.Time) error
	UpdateDetails(ctx context.Context, id, name, phone string, updatedAt time.Time) error
	// List returns accounts most-recently-updated first, optionally
	// filtered by kind.
	List(ctx context.Context, kind *domain.AccountKind, limit, offset int) ([]*domain.Account, error)
	Delete(ctx context.Context, tx Transaction, id string) error
}

// TransactionRepository defines data access for transaction entries.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	// ListByAccount returns entries by date ascending then creation order,
	// the order a ledger statement is reconstructed in.
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	// List returns entries newest first, optionally filtered by kind.
	List(ctx context.Context, kind *domain.TransactionKind, limit, offset int) ([]*domain.Transaction, error)
	Delete(ctx context.Context, tx Transaction, id string) error
	DeleteByAccount(ctx context.Context, tx Transaction, accountID string) error
}

// PaymentRepository defines data access for payment entries.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Payment, error)
	List(ctx context.Context, kind *domain.PaymentKind, limit, offset int) ([]*domain.Payment, error)
	Delete(ctx context.Context, tx Transaction, id string) error
	DeleteByAccount(ctx context.Context, tx Transaction, accountID string) error
}

// LedgerRepository defines ledger-wide aggregate queries.
type LedgerRepository interface {
	// CountImbalanced returns the number of stored accounts whose totals
	// violate remaining == activity - paid.
	CountImbalanced(ctx context.Context) (int64, error)
	Summary(ctx context.Context, since time.Time) (*LedgerSummary, error)
}

// LedgerSummary holds the dashboard aggregates.
type LedgerSummary struct {
	Receivable       decimal.Decimal
	Payable          decimal.Decimal
	BuyerCount       int64
	SellerCount      int64
	RecentBillCount  int64
	RecentBillAmount decimal.Decimal
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
