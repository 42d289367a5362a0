// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cepet-deal/backend/internal/application/usecase/export"
	"github.com/cepet-deal/backend/internal/application/usecase/finance"
	domainerror "github.com/cepet-deal/backend/internal/domain/error"
	"github.com/cepet-deal/backend/internal/integration/entrypoint/dto"
	"github.com/cepet-deal/backend/internal/integration/entrypoint/middleware"
)

// FinanceController handles the finance reporting endpoints.
type FinanceController struct {
	getStatsUseCase     *finance.GetFinanceStatsUseCase
	getTrendsUseCase    *finance.GetFinanceTrendsUseCase
	exportReportUseCase *export.ExportReportUseCase
}

// NewFinanceController creates a new finance controller instance.
func NewFinanceController(
	getStatsUseCase *finance.GetFinanceStatsUseCase,
	getTrendsUseCase *finance.GetFinanceTrendsUseCase,
	exportReportUseCase *export.ExportReportUseCase,
) *FinanceController {
	return &FinanceController{
		getStatsUseCase:     getStatsUseCase,
		getTrendsUseCase:    getTrendsUseCase,
		exportReportUseCase: exportReportUseCase,
	}
}

// GetStats handles GET /finance/stats requests.
func (c *FinanceController) GetStats(ctx *gin.Context) {
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

	output, err := c.getStatsUseCase.Execute(ctx.Request.Context(), finance.GetFinanceStatsInput{
		DealerID:  dealerID,
		Range:     ctx.Query("range"),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGetFinanceStatsResponse(output))
}

// GetTrends handles GET /finance/trends requests.
func (c *FinanceController) GetTrends(ctx *gin.Context) {
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

	output, err := c.getTrendsUseCase.Execute(ctx.Request.Context(), finance.GetFinanceTrendsInput{
		DealerID:  dealerID,
		Range:     ctx.Query("range"),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGetFinanceTrendsResponse(output))
}

// Export handles GET /finance/export/:format requests. The response body is
// the rendered file; headers carry the content type and download filename.
func (c *FinanceController) Export(ctx *gin.Context) {
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

	output, err := c.exportReportUseCase.Execute(ctx.Request.Context(), export.ExportReportInput{
		DealerID:  dealerID,
		Format:    export.Format(ctx.Param("format")),
		Range:     ctx.Query("range"),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+output.Filename+`"`)
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// parseCustomBounds reads the optional start_date and end_date query
// parameters. Dates are calendar days; end_date is inclusive in the API, so
// it becomes the start of the following day in the half-open interval.
func (c *FinanceController) parseCustomBounds(ctx *gin.Context) (*time.Time, *time.Time, bool) {
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

// handleFinanceError maps domain errors to HTTP responses.
func (c *FinanceController) handleFinanceError(ctx *gin.Context, err error) {
	var finErr *domainerror.FinanceError
	if errors.As(err, &finErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: finErr.Message,
			Code:  string(finErr.Code),
		})
		return
	}

	var expErr *domainerror.ExportError
	if errors.As(err, &expErr) {
		statusCode := http.StatusInternalServerError
		if expErr.Code == domainerror.ErrCodeUnsupportedExportFormat {
			statusCode = http.StatusBadRequest
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: expErr.Message,
			Code:  string(expErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
