package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

const pgErrUniqueViolation = "23505"

const accountColumns = `id, kind, name, phone, total_activity, total_paid, total_remaining, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		account.ID,
		string(account.Kind),
		account.Name,
		account.Phone,
		decimalToNumeric(account.TotalActivity),
		decimalToNumeric(account.TotalPaid),
		decimalToNumeric(account.TotalRemaining),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrDuplicateName
	}

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1`, id)

	return scanAccount(row)
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
		FOR UPDATE`, id)

	return scanAccount(row)
}

// GetByName retrieves an account by its display name within a kind.
func (r *AccountRepository) GetByName(ctx context.Context, kind domain.AccountKind, name string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE kind = $1 AND name = $2`, string(kind), name)

	return scanAccount(row)
}

// UpdateTotals persists the three running totals of an account.
func (r *AccountRepository) UpdateTotals(ctx context.Context, tx usecase.Transaction, id string, activity, paid, remaining decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE accounts
		SET total_activity = $2, total_paid = $3, total_remaining = $4, updated_at = $5
		WHERE id = $1`,
		id,
		decimalToNumeric(activity),
		decimalToNumeric(paid),
		decimalToNumeric(remaining),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// UpdateDetails updates an account's display name and phone.
func (r *AccountRepository) UpdateDetails(ctx context.Context, id, name, phone string, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $2, phone = $3, updated_at = $4
		WHERE id = $1`,
		id, name, phone, timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists accounts most-recently-updated first, optionally filtered
// by kind.
func (r *AccountRepository) List(ctx context.Context, kind *domain.AccountKind, limit, offset int) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts`
	args := []any{}

	if kind != nil {
		query += ` WHERE kind = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
		args = append(args, string(*kind), int32(limit), int32(offset))
	} else {
		query += ` ORDER BY updated_at DESC LIMIT $1 OFFSET $2`
		args = append(args, int32(limit), int32(offset))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Delete removes an account row.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		kind      string
		activity  pgtype.Numeric
		paid      pgtype.Numeric
		remaining pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID, &kind, &account.Name, &account.Phone,
		&activity, &paid, &remaining, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Kind = domain.AccountKind(kind)
	account.TotalActivity = numericToDecimal(activity)
	account.TotalPaid = numericToDecimal(paid)
	account.TotalRemaining = numericToDecimal(remaining)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
