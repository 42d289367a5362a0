// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cepet-deal/backend/internal/domain/entity"
)

// SortField identifies a sortable column of the transaction table.
type SortField string

const (
	SortFieldReceiptNumber    SortField = "receiptNumber"
	SortFieldVehicle          SortField = "vehicle"
	SortFieldBuyer            SortField = "buyer"
	SortFieldPaymentMethod    SortField = "paymentMethod"
	SortFieldTotalPrice       SortField = "totalPrice"
	SortFieldRemainingPayment SortField = "remainingPayment"
	SortFieldCreatedAt        SortField = "createdAt"
)

// IsValid reports whether the sort field is in the whitelist.
func (f SortField) IsValid() bool {
	switch f {
	case SortFieldReceiptNumber, SortFieldVehicle, SortFieldBuyer,
		SortFieldPaymentMethod, SortFieldTotalPrice,
		SortFieldRemainingPayment, SortFieldCreatedAt:
		return true
	}
	return false
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// IsValid reports whether the sort order is asc or desc.
func (o SortOrder) IsValid() bool {
	return o == SortOrderAsc || o == SortOrderDesc
}

// TransactionFilter scopes a query to one dealer and a resolved date interval.
// Bounds are half-open: created_at >= StartDate and created_at < EndDate.
type TransactionFilter struct {
	DealerID  uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionSort defines the ordering of a transaction listing.
type TransactionSort struct {
	Field SortField
	Order SortOrder
}

// TransactionPagination defines pagination options. Page is 1-indexed.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents one page of a transaction listing.
type TransactionListResult struct {
	Transactions []*entity.Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByFilter retrieves one sorted page of transactions for the filter.
	// A page past the last one yields an empty row set, not an error; the
	// returned pagination echoes the requested page.
	FindByFilter(ctx context.Context, filter TransactionFilter, sort TransactionSort, pagination TransactionPagination) (*TransactionListResult, error)

	// FindAllByFilter retrieves the full unpaginated transaction set for the
	// filter, reading the store in fixed-size batches. Used by aggregation
	// and export, which must never operate on a single display page.
	FindAllByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// ExistsAllByIDsAndDealer checks if every id exists and belongs to the dealer.
	ExistsAllByIDsAndDealer(ctx context.Context, ids []uuid.UUID, dealerID uuid.UUID) (bool, error)

	// BulkDelete hard-deletes the given transactions as an atomic set: either
	// every requested row is removed or none are. Returns the count deleted.
	BulkDelete(ctx context.Context, ids []uuid.UUID, dealerID uuid.UUID) (int64, error)
}
