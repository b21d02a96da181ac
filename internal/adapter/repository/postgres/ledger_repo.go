package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saklain/khatabook/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// CountImbalanced counts accounts whose stored totals violate the
// balance identity remaining = activity - paid.
func (r *LedgerRepository) CountImbalanced(ctx context.Context) (int64, error) {
	var count int64

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM accounts
		WHERE total_remaining <> total_activity - total_paid`).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Summary aggregates the dashboard figures: what buyers still owe, what
// is still owed to sellers, account counts and billing activity since
// the given cutoff.
func (r *LedgerRepository) Summary(ctx context.Context, since time.Time) (*usecase.LedgerSummary, error) {
	var (
		receivable  pgtype.Numeric
		payable     pgtype.Numeric
		buyerCount  int64
		sellerCount int64
	)

	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total_remaining) FILTER (WHERE kind = 'buyer'), 0),
			COALESCE(SUM(total_remaining) FILTER (WHERE kind = 'seller'), 0),
			COUNT(*) FILTER (WHERE kind = 'buyer'),
			COUNT(*) FILTER (WHERE kind = 'seller')
		FROM accounts`).
		Scan(&receivable, &payable, &buyerCount, &sellerCount)
	if err != nil {
		return nil, err
	}

	var (
		recentCount  int64
		recentAmount pgtype.Numeric
	)

	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_bill), 0)
		FROM transactions
		WHERE entry_date >= $1`, timeToPgTimestamptz(since)).
		Scan(&recentCount, &recentAmount)
	if err != nil {
		return nil, err
	}

	return &usecase.LedgerSummary{
		Receivable:       numericToDecimal(receivable),
		Payable:          numericToDecimal(payable),
		BuyerCount:       buyerCount,
		SellerCount:      sellerCount,
		RecentBillCount:  recentCount,
		RecentBillAmount: numericToDecimal(recentAmount),
	}, nil
}
