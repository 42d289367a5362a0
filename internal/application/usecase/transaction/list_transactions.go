// Package transaction contains transaction-table use cases.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cepet-deal/backend/internal/application/adapter"
	"github.com/cepet-deal/backend/internal/application/usecase/finance"
	"github.com/cepet-deal/backend/internal/domain/entity"
	domainerror "github.com/cepet-deal/backend/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	DealerID  uuid.UUID
	Range     string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
	SortField string
	SortOrder string
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Period       finance.PeriodOutput  `json:"period"`
	Transactions []*entity.Transaction `json:"transactions"`
	Pagination   PaginationOutput      `json:"pagination"`
}

// ListTransactionsUseCase serves the sortable, paginated transaction table.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	now             func() time.Time
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// Execute performs the transaction listing for the resolved interval.
// Requesting a page past the last one returns an empty row set with the
// requested page echoed back; it is not an error.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	token, err := finance.ParseRangeToken(input.Range)
	if err != nil {
		return nil, err
	}

	current, _, err := finance.ResolvePeriod(token, input.StartDate, input.EndDate, uc.now().UTC().Truncate(time.Minute))
	if err != nil {
		return nil, err
	}

	sort, err := resolveSort(input.SortField, input.SortOrder)
	if err != nil {
		return nil, err
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	result, err := uc.transactionRepo.FindByFilter(
		ctx,
		adapter.TransactionFilter{
			DealerID:  input.DealerID,
			StartDate: &current.Start,
			EndDate:   &current.End,
		},
		sort,
		adapter.TransactionPagination{Page: page, Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	return &ListTransactionsOutput{
		Period: finance.PeriodOutput{
			Range:     string(token),
			StartDate: current.Start,
			EndDate:   current.End,
		},
		Transactions: result.Transactions,
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}

// resolveSort validates the sort parameters. An empty field defaults to
// createdAt; an empty order defaults to desc, matching the table's initial
// state and the reset applied when the sort field changes.
func resolveSort(field, order string) (adapter.TransactionSort, error) {
	sortField := adapter.SortFieldCreatedAt
	if field != "" {
		sortField = adapter.SortField(field)
		if !sortField.IsValid() {
			return adapter.TransactionSort{}, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidSortField,
				"sort must be one of: receiptNumber, vehicle, buyer, paymentMethod, totalPrice, remainingPayment, createdAt",
				domainerror.ErrInvalidSortField,
			)
		}
	}

	sortOrder := adapter.SortOrderDesc
	if order != "" {
		sortOrder = adapter.SortOrder(order)
		if !sortOrder.IsValid() {
			return adapter.TransactionSort{}, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidSortOrder,
				"order must be asc or desc",
				domainerror.ErrInvalidSortOrder,
			)
		}
	}

	return adapter.TransactionSort{Field: sortField, Order: sortOrder}, nil
}
