package usecase

import "time"

const (
	// DefaultListLimit is applied when a caller passes no limit.
	DefaultListLimit = 20

	// MaxListLimit caps a single page of results.
	MaxListLimit = 100

	// StatementFetchLimit caps how many entries of each kind a merged
	// statement pulls.
	StatementFetchLimit = 1000

	// SummaryCacheTTL is how long the dashboard summary stays cached.
	SummaryCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}

	if limit > MaxListLimit {
		return MaxListLimit
	}

	return limit
}
