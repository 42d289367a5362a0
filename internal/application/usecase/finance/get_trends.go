package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cepet-deal/backend/internal/application/adapter"
	"github.com/cepet-deal/backend/internal/domain/entity"
)

// GetFinanceTrendsInput represents the input for the trends endpoint.
type GetFinanceTrendsInput struct {
	DealerID  uuid.UUID
	Range     string
	StartDate *time.Time
	EndDate   *time.Time
}

// GetFinanceTrendsOutput represents the output of the trends endpoint.
type GetFinanceTrendsOutput struct {
	Period PeriodOutput  `json:"period"`
	Trends FinanceTrends `json:"trends"`
}

// GetFinanceTrendsUseCase computes the daily series, payment distribution,
// brand performance and monthly comparison for a resolved interval.
type GetFinanceTrendsUseCase struct {
	transactionRepo adapter.TransactionRepository
	listingRepo     adapter.ListingRepository
	cache           adapter.ReportCache
	cacheTTL        time.Duration
	now             func() time.Time
}

// NewGetFinanceTrendsUseCase creates a new GetFinanceTrendsUseCase instance.
func NewGetFinanceTrendsUseCase(
	transactionRepo adapter.TransactionRepository,
	listingRepo adapter.ListingRepository,
	cache adapter.ReportCache,
	cacheTTL time.Duration,
) *GetFinanceTrendsUseCase {
	return &GetFinanceTrendsUseCase{
		transactionRepo: transactionRepo,
		listingRepo:     listingRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		now:             time.Now,
	}
}

// Execute resolves the period, loads its transactions, enriches brands and
// runs the four trend folds.
func (uc *GetFinanceTrendsUseCase) Execute(ctx context.Context, input GetFinanceTrendsInput) (*GetFinanceTrendsOutput, error) {
	token, err := ParseRangeToken(input.Range)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC().Truncate(time.Minute)
	current, _, err := ResolvePeriod(token, input.StartDate, input.EndDate, now)
	if err != nil {
		return nil, err
	}

	cacheKey := intervalCacheKey("trends", token, current)
	if uc.cache != nil {
		if payload, ok, cacheErr := uc.cache.Get(ctx, input.DealerID, cacheKey); cacheErr == nil && ok {
			var output GetFinanceTrendsOutput
			if err := json.Unmarshal(payload, &output); err == nil {
				return &output, nil
			}
		}
	}

	transactions, err := uc.transactionRepo.FindAllByFilter(ctx, adapter.TransactionFilter{
		DealerID:  input.DealerID,
		StartDate: &current.Start,
		EndDate:   &current.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	brands := uc.resolveBrands(ctx, transactions)

	output := &GetFinanceTrendsOutput{
		Period: PeriodOutput{
			Range:     string(token),
			StartDate: current.Start,
			EndDate:   current.End,
		},
		Trends: ComputeTrends(current, transactions, brands),
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(output); err == nil {
			_ = uc.cache.Set(ctx, input.DealerID, cacheKey, payload, uc.cacheTTL)
		}
	}

	return output, nil
}

// resolveBrands looks up the brand for every listing referenced by the
// transaction set. A failed lookup degrades every brand to the Unknown
// sentinel instead of aborting the aggregation.
func (uc *GetFinanceTrendsUseCase) resolveBrands(ctx context.Context, transactions []*entity.Transaction) map[uuid.UUID]string {
	if len(transactions) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(transactions))
	ids := make([]uuid.UUID, 0, len(transactions))
	for _, txn := range transactions {
		if _, ok := seen[txn.ListingID]; ok {
			continue
		}
		seen[txn.ListingID] = struct{}{}
		ids = append(ids, txn.ListingID)
	}

	brands, err := uc.listingRepo.BrandsByListingIDs(ctx, ids)
	if err != nil {
		return nil
	}
	return brands
}
