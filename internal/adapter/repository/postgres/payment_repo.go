package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

const paymentColumns = `id, kind, account_id, entry_date, amount, remaining_after, notes, created_at`

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create persists a payment entry inside the given database transaction.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		payment.ID,
		string(payment.Kind),
		payment.AccountID,
		timeToPgTimestamptz(payment.Date),
		decimalToNumeric(payment.Amount),
		decimalToNumeric(payment.RemainingAfter),
		payment.Notes,
		timeToPgTimestamptz(payment.CreatedAt),
	)

	return err
}

// GetByID retrieves a payment entry by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = $1`, id)

	return scanPayment(row)
}

// ListByAccount lists an account's payment entries in statement order.
func (r *PaymentRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE account_id = $1
		ORDER BY entry_date ASC, created_at ASC
		LIMIT $2 OFFSET $3`,
		accountID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

// List lists payment entries newest first, optionally filtered by kind.
func (r *PaymentRepository) List(ctx context.Context, kind *domain.PaymentKind, limit, offset int) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments`
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

	return collectPayments(rows)
}

// Delete removes a payment entry inside the given database transaction.
func (r *PaymentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

// DeleteByAccount removes every payment entry of an account.
func (r *PaymentRepository) DeleteByAccount(ctx context.Context, tx usecase.Transaction, accountID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `DELETE FROM payments WHERE account_id = $1`, accountID)

	return err
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment   domain.Payment
		kind      string
		date      pgtype.Timestamptz
		amount    pgtype.Numeric
		remaining pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&payment.ID, &kind, &payment.AccountID, &date,
		&amount, &remaining, &payment.Notes, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	payment.Kind = domain.PaymentKind(kind)
	payment.Date = date.Time
	payment.Amount = numericToDecimal(amount)
	payment.RemainingAfter = numericToDecimal(remaining)
	payment.CreatedAt = createdAt.Time

	return &payment, nil
}

func collectPayments(rows pgx.Rows) ([]*domain.Payment, error) {
	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}
