package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cepet-deal/backend/internal/application/adapter"
)

// GetFinanceStatsInput represents the input for the stats endpoint.
type GetFinanceStatsInput struct {
	DealerID  uuid.UUID
	Range     string
	StartDate *time.Time
	EndDate   *time.Time
}

// PeriodOutput echoes the fully resolved interval back to the caller.
// Clients use it to discard responses whose parameters no longer match the
// current UI state after rapid range changes.
type PeriodOutput struct {
	Range     string    `json:"range"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// GetFinanceStatsOutput represents the output of the stats endpoint.
// Comparison is nil for the unbounded "all" range.
type GetFinanceStatsOutput struct {
	Period     PeriodOutput       `json:"period"`
	Stats      FinanceStats       `json:"stats"`
	Comparison *FinanceComparison `json:"comparison,omitempty"`
}

// GetFinanceStatsUseCase computes aggregate statistics for a period plus the
// change versus the immediately preceding period of equal length.
type GetFinanceStatsUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.ReportCache
	cacheTTL        time.Duration
	now             func() time.Time
}

// NewGetFinanceStatsUseCase creates a new GetFinanceStatsUseCase instance.
func NewGetFinanceStatsUseCase(
	transactionRepo adapter.TransactionRepository,
	cache adapter.ReportCache,
	cacheTTL time.Duration,
) *GetFinanceStatsUseCase {
	return &GetFinanceStatsUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		now:             time.Now,
	}
}

// Execute resolves the period and folds the current (and previous, when one
// is defined) transaction sets into stats and a comparison.
func (uc *GetFinanceStatsUseCase) Execute(ctx context.Context, input GetFinanceStatsInput) (*GetFinanceStatsOutput, error) {
	token, err := ParseRangeToken(input.Range)
	if err != nil {
		return nil, err
	}

	// Truncating to the minute keeps preset intervals stable across the
	// cache TTL without materially moving the query-time boundary.
	now := uc.now().UTC().Truncate(time.Minute)
	current, previous, err := ResolvePeriod(token, input.StartDate, input.EndDate, now)
	if err != nil {
		return nil, err
	}

	cacheKey := intervalCacheKey("stats", token, current)
	if cached, ok := uc.cacheGet(ctx, input.DealerID, cacheKey); ok {
		var output GetFinanceStatsOutput
		if err := json.Unmarshal(cached, &output); err == nil {
			return &output, nil
		}
	}

	currentTxns, err := uc.transactionRepo.FindAllByFilter(ctx, adapter.TransactionFilter{
		DealerID:  input.DealerID,
		StartDate: &current.Start,
		EndDate:   &current.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	output := &GetFinanceStatsOutput{
		Period: PeriodOutput{
			Range:     string(token),
			StartDate: current.Start,
			EndDate:   current.End,
		},
		Stats: ComputeStats(currentTxns),
	}

	if previous != nil {
		previousTxns, err := uc.transactionRepo.FindAllByFilter(ctx, adapter.TransactionFilter{
			DealerID:  input.DealerID,
			StartDate: &previous.Start,
			EndDate:   &previous.End,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load previous period transactions: %w", err)
		}
		comparison := ComputeComparison(output.Stats, ComputeStats(previousTxns))
		output.Comparison = &comparison
	}

	uc.cacheSet(ctx, input.DealerID, cacheKey, output)

	return output, nil
}

func (uc *GetFinanceStatsUseCase) cacheGet(ctx context.Context, dealerID uuid.UUID, key string) ([]byte, bool) {
	if uc.cache == nil {
		return nil, false
	}
	payload, ok, err := uc.cache.Get(ctx, dealerID, key)
	if err != nil || !ok {
		return nil, false
	}
	return payload, true
}

func (uc *GetFinanceStatsUseCase) cacheSet(ctx context.Context, dealerID uuid.UUID, key string, output any) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(output)
	if err != nil {
		return
	}
	// Cache failures degrade to recomputation; never surface them.
	_ = uc.cache.Set(ctx, dealerID, key, payload, uc.cacheTTL)
}

// intervalCacheKey builds a cache key from the fully resolved interval.
// Custom ranges with identical tokens but different bounds must never
// collide, so the token alone is never a key.
func intervalCacheKey(kind string, token RangeToken, interval DateInterval) string {
	return fmt.Sprintf("%s:%s:%d:%d", kind, token, interval.Start.Unix(), interval.End.Unix())
}
