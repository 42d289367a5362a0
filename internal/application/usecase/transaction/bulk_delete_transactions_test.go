package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/cepet-deal/backend/internal/domain/error"
)

// spyReportCache counts invalidations.
type spyReportCache struct {
	invalidations int
}

func (c *spyReportCache) Get(ctx context.Context, dealerID uuid.UUID, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *spyReportCache) Set(ctx context.Context, dealerID uuid.UUID, key string, payload []byte, ttl time.Duration) error {
	return nil
}

func (c *spyReportCache) Invalidate(ctx context.Context, dealerID uuid.UUID) error {
	c.invalidations++
	return nil
}

func TestBulkDeleteTransactionsUseCase(t *testing.T) {
	dealerID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	t.Run("deletes the set and invalidates the cache", func(t *testing.T) {
		repo := &fakeTransactionRepo{existsAll: true}
		cache := &spyReportCache{}
		uc := NewBulkDeleteTransactionsUseCase(repo, cache)

		output, err := uc.Execute(context.Background(), BulkDeleteTransactionsInput{
			TransactionIDs: ids,
			DealerID:       dealerID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.DeletedCount != 3 {
			t.Errorf("expected 3 deleted, got %d", output.DeletedCount)
		}
		if len(repo.deleted) != 3 {
			t.Errorf("expected repository delete of 3 ids, got %d", len(repo.deleted))
		}
		if cache.invalidations != 1 {
			t.Errorf("expected one cache invalidation, got %d", cache.invalidations)
		}
	})

	t.Run("treats repeated ids as a set", func(t *testing.T) {
		repo := &fakeTransactionRepo{existsAll: true}
		cache := &spyReportCache{}
		uc := NewBulkDeleteTransactionsUseCase(repo, cache)

		// The same two transactions requested twice must delete exactly two.
		output, err := uc.Execute(context.Background(), BulkDeleteTransactionsInput{
			TransactionIDs: []uuid.UUID{ids[0], ids[1], ids[0], ids[1]},
			DealerID:       dealerID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.DeletedCount != 2 {
			t.Errorf("expected 2 deleted, got %d", output.DeletedCount)
		}
		if len(repo.checked) != 2 {
			t.Errorf("expected existence check over 2 unique ids, got %d", len(repo.checked))
		}
		if len(repo.deleted) != 2 || repo.deleted[0] != ids[0] || repo.deleted[1] != ids[1] {
			t.Errorf("expected delete of the unique ids in order, got %v", repo.deleted)
		}
		if cache.invalidations != 1 {
			t.Errorf("expected one cache invalidation, got %d", cache.invalidations)
		}
	})

	t.Run("rejects an empty id list", func(t *testing.T) {
		uc := NewBulkDeleteTransactionsUseCase(&fakeTransactionRepo{existsAll: true}, nil)
		_, err := uc.Execute(context.Background(), BulkDeleteTransactionsInput{DealerID: dealerID})
		var txnErr *domainerror.TransactionError
		if !errors.As(err, &txnErr) {
			t.Fatalf("expected TransactionError, got %v", err)
		}
		if txnErr.Code != domainerror.ErrCodeEmptyTransactionIDs {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeEmptyTransactionIDs, txnErr.Code)
		}
	})

	t.Run("rejects when any id is missing or foreign", func(t *testing.T) {
		cache := &spyReportCache{}
		uc := NewBulkDeleteTransactionsUseCase(&fakeTransactionRepo{existsAll: false}, cache)
		_, err := uc.Execute(context.Background(), BulkDeleteTransactionsInput{
			TransactionIDs: ids,
			DealerID:       dealerID,
		})
		var txnErr *domainerror.TransactionError
		if !errors.As(err, &txnErr) {
			t.Fatalf("expected TransactionError, got %v", err)
		}
		if txnErr.Code != domainerror.ErrCodeTransactionIDsNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeTransactionIDsNotFound, txnErr.Code)
		}
		if cache.invalidations != 0 {
			t.Error("expected no cache invalidation on failure")
		}
	})

	t.Run("does not invalidate the cache when the delete fails", func(t *testing.T) {
		cache := &spyReportCache{}
		repo := &fakeTransactionRepo{
			existsAll: true,
			deleteErr: domainerror.NewTransactionError(
				domainerror.ErrCodeBulkDeleteIncomplete,
				"expected to delete 3 transactions, matched 2",
				domainerror.ErrBulkDeleteIncomplete,
			),
		}
		uc := NewBulkDeleteTransactionsUseCase(repo, cache)
		_, err := uc.Execute(context.Background(), BulkDeleteTransactionsInput{
			TransactionIDs: ids,
			DealerID:       dealerID,
		})
		if err == nil {
			t.Fatal("expected an error")
		}
		if cache.invalidations != 0 {
			t.Error("expected no cache invalidation on failure")
		}
	})
}
