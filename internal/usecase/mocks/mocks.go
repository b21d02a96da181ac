package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

// MockAccountRepository is a stateful in-memory AccountRepository.
// Individual methods can be overridden through the *Func fields.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc           func(ctx context.Context, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByNameFunc        func(ctx context.Context, kind domain.AccountKind, name string) (*domain.Account, error)
	UpdateTotalsFunc     func(ctx context.Context, tx usecase.Transaction, id string, activity, paid, remaining decimal.Decimal, updatedAt time.Time) error
	UpdateDetailsFunc    func(ctx context.Context, id, name, phone string, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, kind *domain.AccountKind, limit, offset int) ([]*domain.Account, error)
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByName(ctx context.Context, kind domain.AccountKind, name string) (*domain.Account, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, kind, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Kind == kind && acc.Name == name {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateTotals(ctx context.Context, tx usecase.Transaction, id string, activity, paid, remaining decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateTotalsFunc != nil {
		return m.UpdateTotalsFunc(ctx, tx, id, activity, paid, remaining, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.TotalActivity = activity
		acc.TotalPaid = paid
		acc.TotalRemaining = remaining
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateDetails(ctx context.Context, id, name, phone string, updatedAt time.Time) error {
	if m.UpdateDetailsFunc != nil {
		return m.UpdateDetailsFunc(ctx, id, name, phone, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Name = name
		acc.Phone = phone
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, kind *domain.AccountKind, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if kind != nil && acc.Kind != *kind {
			continue
		}
		copied := *acc
		accounts = append(accounts, &copied)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].UpdatedAt.After(accounts[j].UpdatedAt)
	})
	return accounts, nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

// MockTransactionRepository is a stateful in-memory TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccountFunc   func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListFunc            func(ctx context.Context, kind *domain.TransactionKind, limit, offset int) ([]*domain.Transaction, error)
	DeleteFunc          func(ctx context.Context, tx usecase.Transaction, id string) error
	DeleteByAccountFunc func(ctx context.Context, tx usecase.Transaction, accountID string) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *transaction
	m.transactions[transaction.ID] = &copied
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.transactions {
		if t.AccountID == accountID {
			copied := *t
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockTransactionRepository) List(ctx context.Context, kind *domain.TransactionKind, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.transactions {
		if kind != nil && t.Kind != *kind {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) DeleteByAccount(ctx context.Context, tx usecase.Transaction, accountID string) error {
	if m.DeleteByAccountFunc != nil {
		return m.DeleteByAccountFunc(ctx, tx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.transactions {
		if t.AccountID == accountID {
			delete(m.transactions, id)
		}
	}
	return nil
}

// MockPaymentRepository is a stateful in-memory PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.Payment, error)
	ListByAccountFunc   func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Payment, error)
	ListFunc            func(ctx context.Context, kind *domain.PaymentKind, limit, offset int) ([]*domain.Payment, error)
	DeleteFunc          func(ctx context.Context, tx usecase.Transaction, id string) error
	DeleteByAccountFunc func(ctx context.Context, tx usecase.Transaction, accountID string) error
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *payment
	m.payments[payment.ID] = &copied
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payments[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Payment, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.AccountID == accountID {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockPaymentRepository) List(ctx context.Context, kind *domain.PaymentKind, limit, offset int) ([]*domain.Payment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Payment
	for _, p := range m.payments {
		if kind != nil && p.Kind != *kind {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockPaymentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(m.payments, id)
	return nil
}

func (m *MockPaymentRepository) DeleteByAccount(ctx context.Context, tx usecase.Transaction, accountID string) error {
	if m.DeleteByAccountFunc != nil {
		return m.DeleteByAccountFunc(ctx, tx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.payments {
		if p.AccountID == accountID {
			delete(m.payments, id)
		}
	}
	return nil
}

// MockTransaction is a no-op database transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator generates sequential test IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "id-" + strconv.Itoa(m.next)
}

// MockCache is an in-memory Cache ignoring TTLs.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
