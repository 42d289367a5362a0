package dto

import (
	"time"

	"github.com/cepet-deal/backend/internal/application/usecase/transaction"
	"github.com/cepet-deal/backend/internal/domain/entity"
	"github.com/cepet-deal/backend/internal/domain/valueobject"
)

// BulkDeleteTransactionsRequest represents the request body for bulk transaction deletion.
type BulkDeleteTransactionsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// BulkDeleteTransactionsResponse represents the response for bulk transaction deletion.
type BulkDeleteTransactionsResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                        string    `json:"id"`
	ListingID                 string    `json:"listing_id"`
	ReceiptNumber             string    `json:"receipt_number"`
	Vehicle                   string    `json:"vehicle"`
	Buyer                     string    `json:"buyer"`
	PaymentMethod             string    `json:"payment_method"`
	TotalPrice                string    `json:"total_price"`
	TotalPriceFormatted       string    `json:"total_price_formatted"`
	DownPayment               string    `json:"down_payment"`
	TandaJadi                 string    `json:"tanda_jadi"`
	Collected                 string    `json:"collected"`
	RemainingPayment          string    `json:"remaining_payment"`
	RemainingPaymentFormatted string    `json:"remaining_payment_formatted"`
	Profit                    string    `json:"profit"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListTransactionsResponse represents the response for transaction listing.
type ListTransactionsResponse struct {
	Period       PeriodResponse                `json:"period"`
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// ToTransactionResponse converts a domain Transaction entity to its DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                        txn.ID.String(),
		ListingID:                 txn.ListingID.String(),
		ReceiptNumber:             txn.ReceiptNumber,
		Vehicle:                   txn.Vehicle,
		Buyer:                     txn.Buyer,
		PaymentMethod:             string(txn.PaymentMethod),
		TotalPrice:                txn.TotalPrice.String(),
		TotalPriceFormatted:       valueobject.FormatRupiah(txn.TotalPrice),
		DownPayment:               txn.DownPayment.String(),
		TandaJadi:                 txn.TandaJadi.String(),
		Collected:                 txn.Collected.String(),
		RemainingPayment:          txn.RemainingPayment.String(),
		RemainingPaymentFormatted: valueobject.FormatRupiah(txn.RemainingPayment),
		Profit:                    txn.Profit.String(),
		CreatedAt:                 txn.CreatedAt,
		UpdatedAt:                 txn.UpdatedAt,
	}
}

// ToListTransactionsResponse converts the listing use case output to its DTO.
func ToListTransactionsResponse(output *transaction.ListTransactionsOutput) ListTransactionsResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}
	return ListTransactionsResponse{
		Period: PeriodResponse{
			Range:     output.Period.Range,
			StartDate: output.Period.StartDate.Format(time.RFC3339),
			EndDate:   output.Period.EndDate.Format(time.RFC3339),
		},
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}
