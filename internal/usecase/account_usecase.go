package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/infrastructure/metrics"
)

// AccountUseCase handles account bookkeeping outside the ledger engine:
// creation, detail updates, listing and the cascading delete.
type AccountUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	paymentRepo     PaymentRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	paymentRepo PaymentRepository,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
		idGen:           idGen,
	}
}

// WithMetrics enables account metrics.
func (uc *AccountUseCase) WithMetrics(m *metrics.Metrics) *AccountUseCase {
	uc.metrics = m
	return uc
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Kind  domain.AccountKind
	Name  string
	Phone string
}

// CreateAccount creates a new account with zeroed totals. The display
// name must be unique within the account kind.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidAccountKind
	}

	name := strings.TrimSpace(input.Name)
	if err := domain.ValidateAccountName(name); err != nil {
		return nil, err
	}

	existing, err := uc.accountRepo.GetByName(ctx, input.Kind, name)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		Kind:           input.Kind,
		Name:           name,
		Phone:          strings.TrimSpace(input.Phone),
		TotalActivity:  decimal.Zero,
		TotalPaid:      decimal.Zero,
		TotalRemaining: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Kind   *domain.AccountKind
	Limit  int
	Offset int
}

// ListAccounts lists accounts most-recently-updated first.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Kind != nil && !input.Kind.Valid() {
		return nil, domain.ErrInvalidAccountKind
	}

	return uc.accountRepo.List(ctx, input.Kind, clampLimit(input.Limit), input.Offset)
}

// UpdateAccountInput represents input for updating account details.
// Empty fields keep their stored values.
type UpdateAccountInput struct {
	ID    string
	Name  string
	Phone string
}

// UpdateAccount changes an account's display name and phone. Renames are
// not re-checked for uniqueness; only creation enforces it.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		if err := domain.ValidateAccountName(name); err != nil {
			return nil, err
		}
		account.Name = name
	}

	if phone := strings.TrimSpace(input.Phone); phone != "" {
		account.Phone = phone
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.UpdateDetails(ctx, account.ID, account.Name, account.Phone, account.UpdatedAt); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes the account together with every transaction and
// payment entry referencing it. The cascade is irreversible and shares
// one database transaction, so no dangling entry can survive it.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock the row so a concurrent engine command cannot interleave with
	// the cascade.
	if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id); err != nil {
		return err
	}

	if err := uc.paymentRepo.DeleteByAccount(ctx, tx, id); err != nil {
		return err
	}

	if err := uc.transactionRepo.DeleteByAccount(ctx, tx, id); err != nil {
		return err
	}

	if err := uc.accountRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsDeleted.Inc()
	}

	return nil
}
