// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cepet-deal/backend/internal/application/adapter"
	"github.com/cepet-deal/backend/internal/domain/entity"
	domainerror "github.com/cepet-deal/backend/internal/domain/error"
	"github.com/cepet-deal/backend/internal/integration/persistence/model"
)

// findAllBatchSize bounds memory when loading an unpaginated set; the "all"
// range can span a dealer's entire history.
const findAllBatchSize = 500

// sortColumns maps API sort fields to their database columns. Sorting is
// built exclusively from this map; request values never reach the ORDER BY
// clause directly.
var sortColumns = map[adapter.SortField]string{
	adapter.SortFieldReceiptNumber:    "receipt_number",
	adapter.SortFieldVehicle:          "vehicle",
	adapter.SortFieldBuyer:            "buyer",
	adapter.SortFieldPaymentMethod:    "payment_method",
	adapter.SortFieldTotalPrice:       "total_price",
	adapter.SortFieldRemainingPayment: "remaining_payment",
	adapter.SortFieldCreatedAt:        "created_at",
}

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// filteredQuery applies the dealer scope and the half-open date bounds.
func (r *transactionRepository) filteredQuery(ctx context.Context, filter adapter.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("dealer_id = ?", filter.DealerID)

	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at < ?", *filter.EndDate)
	}
	return query
}

// FindByFilter retrieves one sorted page of transactions for the filter.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, sort adapter.TransactionSort, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	column, ok := sortColumns[sort.Field]
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidSortField,
			fmt.Sprintf("unsortable field: %s", sort.Field),
			domainerror.ErrInvalidSortField,
		)
	}
	direction := "ASC"
	if sort.Order == adapter.SortOrderDesc {
		direction = "DESC"
	}

	query := r.filteredQuery(ctx, filter)

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	}

	var transactionModels []model.TransactionModel
	result := query.
		Order(fmt.Sprintf("%s %s, id ASC", column, direction)).
		Offset((pagination.Page - 1) * pagination.Limit).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// FindAllByFilter retrieves the complete transaction set for the filter,
// reading in fixed-size batches ordered by (created_at, id) so the result is
// stable regardless of set size.
func (r *transactionRepository) FindAllByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	transactions := make([]*entity.Transaction, 0)

	for offset := 0; ; offset += findAllBatchSize {
		var batch []model.TransactionModel
		result := r.filteredQuery(ctx, filter).
			Order("created_at ASC, id ASC").
			Offset(offset).
			Limit(findAllBatchSize).
			Find(&batch)
		if result.Error != nil {
			return nil, result.Error
		}

		for i := range batch {
			transactions = append(transactions, batch[i].ToEntity())
		}
		if len(batch) < findAllBatchSize {
			return transactions, nil
		}
	}
}

// ExistsAllByIDsAndDealer checks if every id exists and belongs to the dealer.
func (r *transactionRepository) ExistsAllByIDsAndDealer(ctx context.Context, ids []uuid.UUID, dealerID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id IN ? AND dealer_id = ?", ids, dealerID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count == int64(len(ids)), nil
}

// BulkDelete hard-deletes the given transactions inside one database
// transaction. Removing fewer rows than requested rolls the whole operation
// back; a concurrent delete must not leave a partial result.
func (r *transactionRepository) BulkDelete(ctx context.Context, ids []uuid.UUID, dealerID uuid.UUID) (int64, error) {
	var deletedCount int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("id IN ? AND dealer_id = ?", ids, dealerID).
			Delete(&model.TransactionModel{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected != int64(len(ids)) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeBulkDeleteIncomplete,
				fmt.Sprintf("expected to delete %d transactions, matched %d", len(ids), result.RowsAffected),
				domainerror.ErrBulkDeleteIncomplete,
			)
		}

		deletedCount = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deletedCount, nil
}
