package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cepet-deal/backend/internal/application/adapter"
	domainerror "github.com/cepet-deal/backend/internal/domain/error"
)

// BulkDeleteTransactionsInput represents the input for bulk transaction deletion.
type BulkDeleteTransactionsInput struct {
	TransactionIDs []uuid.UUID
	DealerID       uuid.UUID
}

// BulkDeleteTransactionsOutput represents the output of bulk transaction deletion.
type BulkDeleteTransactionsOutput struct {
	DeletedCount int64
}

// BulkDeleteTransactionsUseCase handles bulk transaction deletion. Deletion
// is atomic as a set: either every requested id is removed or none are.
type BulkDeleteTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	reportCache     adapter.ReportCache
}

// NewBulkDeleteTransactionsUseCase creates a new BulkDeleteTransactionsUseCase instance.
func NewBulkDeleteTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	reportCache adapter.ReportCache,
) *BulkDeleteTransactionsUseCase {
	return &BulkDeleteTransactionsUseCase{
		transactionRepo: transactionRepo,
		reportCache:     reportCache,
	}
}

// Execute performs the bulk transaction deletion and invalidates the
// dealer's cached finance aggregates on success.
func (uc *BulkDeleteTransactionsUseCase) Execute(ctx context.Context, input BulkDeleteTransactionsInput) (*BulkDeleteTransactionsOutput, error) {
	if len(input.TransactionIDs) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"transaction IDs list cannot be empty",
			domainerror.ErrEmptyTransactionIDs,
		)
	}

	// The request is a set: a repeated id must not trip the all-or-nothing
	// count checks downstream.
	ids := dedupeIDs(input.TransactionIDs)

	allExist, err := uc.transactionRepo.ExistsAllByIDsAndDealer(ctx, ids, input.DealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify transactions: %w", err)
	}
	if !allExist {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionIDsNotFound,
			"one or more transactions not found or not owned by dealer",
			domainerror.ErrTransactionIDsNotFound,
		)
	}

	deletedCount, err := uc.transactionRepo.BulkDelete(ctx, ids, input.DealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk delete transactions: %w", err)
	}

	// Cached aggregates for every interval are stale now.
	if uc.reportCache != nil {
		_ = uc.reportCache.Invalidate(ctx, input.DealerID)
	}

	return &BulkDeleteTransactionsOutput{
		DeletedCount: deletedCount,
	}, nil
}

// dedupeIDs removes duplicate ids, preserving first-seen order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
