package usecase

import (
	"context"
	"encoding/json"
	"time"
)

const summaryCacheKey = "dashboard:summary"

// DashboardUseCase serves ledger-wide aggregates for the dashboard and
// the consistency check. Reads only; the totals it reports are whatever
// the engine last committed.
type DashboardUseCase struct {
	ledgerRepo LedgerRepository
	cache      Cache
}

// NewDashboardUseCase creates a new DashboardUseCase.
func NewDashboardUseCase(ledgerRepo LedgerRepository, cache Cache) *DashboardUseCase {
	return &DashboardUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Summary returns receivable/payable totals, account counts and today's
// billing activity. Results are cached briefly since the dashboard polls.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*LedgerSummary, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, summaryCacheKey); err == nil && cached != nil {
			var summary LedgerSummary
			if err := json.Unmarshal(cached, &summary); err == nil {
				return &summary, nil
			}
		}
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)

	summary, err := uc.ledgerRepo.Summary(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, summaryCacheKey, encoded, SummaryCacheTTL)
		}
	}

	return summary, nil
}

// CheckConsistency verifies the balance identity across every stored
// account: remaining == activity - paid. Returns the number of accounts
// violating it; zero means the ledger is consistent.
func (uc *DashboardUseCase) CheckConsistency(ctx context.Context) (int64, error) {
	return uc.ledgerRepo.CountImbalanced(ctx)
}
