package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cepet-deal/backend/internal/application/usecase/transaction"
	domainerror "github.com/cepet-deal/backend/internal/domain/error"
	"github.com/cepet-deal/backend/internal/integration/entrypoint/dto"
	"github.com/cepet-deal/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles the transaction table endpoints.
type TransactionController struct {
	listTransactionsUseCase       *transaction.ListTransactionsUseCase
	bulkDeleteTransactionsUseCase *transaction.BulkDeleteTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listTransactionsUseCase *transaction.ListTransactionsUseCase,
	bulkDeleteTransactionsUseCase *transaction.BulkDeleteTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		listTransactionsUseCase:       listTransactionsUseCase,
		bulkDeleteTransactionsUseCase: bulkDeleteTransactionsUseCase,
	}
}

// List handles GET /finance/transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	dealerID, ok := middleware.GetDealerIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Dealer not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	startDate, endDate, ok := c.parseCustomBounds(ctx)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	output, err := c.listTransactionsUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		DealerID:  dealerID,
		Range:     ctx.Query("range"),
		StartDate: startDate,
		EndDate:   endDate,
		Page:      page,
		Limit:     limit,
		SortField: ctx.Query("sort"),
		SortOrder: ctx.Query("order"),
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToListTransactionsResponse(output))
}

// BulkDelete handles POST /finance/transactions/bulk-delete requests.
func (c *TransactionController) BulkDelete(ctx *gin.Context) {
	dealerID, ok := middleware.GetDealerIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Dealer not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var request dto.BulkDeleteTransactionsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "ids is required and must not be empty",
			Code:  string(domainerror.ErrCodeEmptyTransactionIDs),
		})
		return
	}

	ids := make([]uuid.UUID, len(request.IDs))
	for i, raw := range request.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid transaction ID: " + raw,
				Code:  string(domainerror.ErrCodeTransactionIDsNotFound),
			})
			return
		}
		ids[i] = id
	}

	output, err := c.bulkDeleteTransactionsUseCase.Execute(ctx.Request.Context(), transaction.BulkDeleteTransactionsInput{
		TransactionIDs: ids,
		DealerID:       dealerID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BulkDeleteTransactionsResponse{
		DeletedCount: output.DeletedCount,
	})
}

func (c *TransactionController) parseCustomBounds(ctx *gin.Context) (*time.Time, *time.Time, bool) {
	var startDate, endDate *time.Time

	if raw := ctx.Query("start_date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return nil, nil, false
		}
		startDate = &parsed
	}

	if raw := ctx.Query("end_date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return nil, nil, false
		}
		exclusive := parsed.AddDate(0, 0, 1)
		endDate = &exclusive
	}

	return startDate, endDate, true
}

// handleTransactionError maps domain errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(c.getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var finErr *domainerror.FinanceError
	if errors.As(err, &finErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: finErr.Message,
			Code:  string(finErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidSortField,
		domainerror.ErrCodeInvalidSortOrder,
		domainerror.ErrCodeEmptyTransactionIDs:
		return http.StatusBadRequest
	case domainerror.ErrCodeTransactionIDsNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBulkDeleteIncomplete:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
