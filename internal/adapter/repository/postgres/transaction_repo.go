package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

const transactionColumns = `id, kind, account_id, entry_date, items, total_bill, paid_now, remaining_after, notes, created_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// jsonLineItem is the JSONB shape of one bill line.
type jsonLineItem struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

func itemsToJSON(items []domain.LineItem) ([]byte, error) {
	out := make([]jsonLineItem, len(items))
	for i, item := range items {
		out[i] = jsonLineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		}
	}

	return json.Marshal(out)
}

func itemsFromJSON(data []byte) ([]domain.LineItem, error) {
	var raw []jsonLineItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, len(raw))
	for i, item := range raw {
		items[i] = domain.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		}
	}

	return items, nil
}

// Create persists a transaction entry inside the given database
// transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	items, err := itemsToJSON(transaction.Items)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		transaction.ID,
		string(transaction.Kind),
		transaction.AccountID,
		timeToPgTimestamptz(transaction.Date),
		items,
		decimalToNumeric(transaction.TotalBill),
		decimalToNumeric(transaction.PaidNow),
		decimalToNumeric(transaction.RemainingAfter),
		transaction.Notes,
		timeToPgTimestamptz(transaction.CreatedAt),
	)

	return err
}

// GetByID retrieves a transaction entry by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1`, id)

	return scanTransaction(row)
}

// ListByAccount lists an account's transaction entries in statement
// order: date ascending, then creation order.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = $1
		ORDER BY entry_date ASC, created_at ASC
		LIMIT $2 OFFSET $3`,
		accountID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// List lists transaction entries newest first, optionally filtered by
// kind.
func (r *TransactionRepository) List(ctx context.Context, kind *domain.TransactionKind, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions`
	args := []any{}

	if kind != nil {
		query += ` WHERE kind = $1 ORDER BY entry_date DESC, created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, string(*kind), int32(limit), int32(offset))
	} else {
		query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, int32(limit), int32(offset))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// Delete removes a transaction entry inside the given database
// transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// DeleteByAccount removes every transaction entry of an account.
func (r *TransactionRepository) DeleteByAccount(ctx context.Context, tx usecase.Transaction, accountID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `DELETE FROM transactions WHERE account_id = $1`, accountID)

	return err
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction domain.Transaction
		kind        string
		date        pgtype.Timestamptz
		items       []byte
		totalBill   pgtype.Numeric
		paidNow     pgtype.Numeric
		remaining   pgtype.Numeric
		createdAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&transaction.ID, &kind, &transaction.AccountID, &date,
		&items, &totalBill, &paidNow, &remaining,
		&transaction.Notes, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	transaction.Items, err = itemsFromJSON(items)
	if err != nil {
		return nil, err
	}

	transaction.Kind = domain.TransactionKind(kind)
	transaction.Date = date.Time
	transaction.TotalBill = numericToDecimal(totalBill)
	transaction.PaidNow = numericToDecimal(paidNow)
	transaction.RemainingAfter = numericToDecimal(remaining)
	transaction.CreatedAt = createdAt.Time

	return &transaction, nil
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}
