package dto

import (
	"time"

	"github.com/cepet-deal/backend/internal/application/usecase/finance"
	"github.com/cepet-deal/backend/internal/domain/valueobject"
)

// FinanceStatsResponse represents the aggregate statistics in API responses.
// Monetary amounts are decimal strings; the *_formatted fields carry the
// display rendering shared with the exporters.
type FinanceStatsResponse struct {
	TotalRevenue              string  `json:"total_revenue"`
	TotalRevenueFormatted     string  `json:"total_revenue_formatted"`
	TotalSales                int     `json:"total_sales"`
	AverageSaleValue          string  `json:"average_sale_value"`
	AverageSaleValueFormatted string  `json:"average_sale_value_formatted"`
	TotalProfit               string  `json:"total_profit"`
	TotalProfitFormatted      string  `json:"total_profit_formatted"`
	ProfitMargin              float64 `json:"profit_margin"`
	CashSales                 int     `json:"cash_sales"`
	CreditSales               int     `json:"credit_sales"`
	TotalCollected            string  `json:"total_collected"`
	TotalCollectedFormatted   string  `json:"total_collected_formatted"`
	TotalPending              string  `json:"total_pending"`
	TotalPendingFormatted     string  `json:"total_pending_formatted"`
	CollectionRate            float64 `json:"collection_rate"`
}

// FinanceComparisonResponse represents percentage changes versus the previous period.
type FinanceComparisonResponse struct {
	RevenueChange float64 `json:"revenue_change"`
	SalesChange   float64 `json:"sales_change"`
	ProfitChange  float64 `json:"profit_change"`
}

// GetFinanceStatsResponse represents the response for the stats endpoint.
type GetFinanceStatsResponse struct {
	Period     PeriodResponse             `json:"period"`
	Stats      FinanceStatsResponse       `json:"stats"`
	Comparison *FinanceComparisonResponse `json:"comparison,omitempty"`
}

// DailyTrendResponse represents one day of the daily series.
type DailyTrendResponse struct {
	Date    string `json:"date"`
	Revenue string `json:"revenue"`
	Sales   int    `json:"sales"`
	Profit  string `json:"profit"`
}

// PaymentMethodResponse represents one payment method's share.
type PaymentMethodResponse struct {
	Method     string  `json:"method"`
	Count      int     `json:"count"`
	Revenue    string  `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// BrandPerformanceResponse represents one of the top brands by revenue.
type BrandPerformanceResponse struct {
	Brand   string `json:"brand"`
	Sales   int    `json:"sales"`
	Revenue string `json:"revenue"`
}

// MonthlyComparisonResponse represents one calendar month's totals.
type MonthlyComparisonResponse struct {
	Month   string `json:"month"`
	Revenue string `json:"revenue"`
	Sales   int    `json:"sales"`
}

// GetFinanceTrendsResponse represents the response for the trends endpoint.
type GetFinanceTrendsResponse struct {
	Period         PeriodResponse              `json:"period"`
	Daily          []DailyTrendResponse        `json:"daily"`
	PaymentMethods []PaymentMethodResponse     `json:"payment_methods"`
	Brands         []BrandPerformanceResponse  `json:"brands"`
	Monthly        []MonthlyComparisonResponse `json:"monthly"`
}

// ToPeriodResponse converts a use case period to its DTO.
func ToPeriodResponse(period finance.PeriodOutput) PeriodResponse {
	return PeriodResponse{
		Range:     period.Range,
		StartDate: period.StartDate.Format(time.RFC3339),
		EndDate:   period.EndDate.Format(time.RFC3339),
	}
}

// ToFinanceStatsResponse converts use case stats to their DTO.
func ToFinanceStatsResponse(stats finance.FinanceStats) FinanceStatsResponse {
	return FinanceStatsResponse{
		TotalRevenue:              stats.TotalRevenue.String(),
		TotalRevenueFormatted:     valueobject.FormatRupiah(stats.TotalRevenue),
		TotalSales:                stats.TotalSales,
		AverageSaleValue:          stats.AverageSaleValue.String(),
		AverageSaleValueFormatted: valueobject.FormatRupiah(stats.AverageSaleValue),
		TotalProfit:               stats.TotalProfit.String(),
		TotalProfitFormatted:      valueobject.FormatRupiah(stats.TotalProfit),
		ProfitMargin:              stats.ProfitMargin,
		CashSales:                 stats.CashSales,
		CreditSales:               stats.CreditSales,
		TotalCollected:            stats.TotalCollected.String(),
		TotalCollectedFormatted:   valueobject.FormatRupiah(stats.TotalCollected),
		TotalPending:              stats.TotalPending.String(),
		TotalPendingFormatted:     valueobject.FormatRupiah(stats.TotalPending),
		CollectionRate:            stats.CollectionRate,
	}
}

// ToGetFinanceStatsResponse converts the stats use case output to its DTO.
func ToGetFinanceStatsResponse(output *finance.GetFinanceStatsOutput) GetFinanceStatsResponse {
	response := GetFinanceStatsResponse{
		Period: ToPeriodResponse(output.Period),
		Stats:  ToFinanceStatsResponse(output.Stats),
	}
	if output.Comparison != nil {
		response.Comparison = &FinanceComparisonResponse{
			RevenueChange: output.Comparison.RevenueChange,
			SalesChange:   output.Comparison.SalesChange,
			ProfitChange:  output.Comparison.ProfitChange,
		}
	}
	return response
}

// ToGetFinanceTrendsResponse converts the trends use case output to its DTO.
func ToGetFinanceTrendsResponse(output *finance.GetFinanceTrendsOutput) GetFinanceTrendsResponse {
	response := GetFinanceTrendsResponse{
		Period:         ToPeriodResponse(output.Period),
		Daily:          make([]DailyTrendResponse, len(output.Trends.Daily)),
		PaymentMethods: make([]PaymentMethodResponse, len(output.Trends.PaymentMethods)),
		Brands:         make([]BrandPerformanceResponse, len(output.Trends.Brands)),
		Monthly:        make([]MonthlyComparisonResponse, len(output.Trends.Monthly)),
	}
	for i, point := range output.Trends.Daily {
		response.Daily[i] = DailyTrendResponse{
			Date:    point.Date.Format("2006-01-02"),
			Revenue: point.Revenue.String(),
			Sales:   point.Sales,
			Profit:  point.Profit.String(),
		}
	}
	for i, dist := range output.Trends.PaymentMethods {
		response.PaymentMethods[i] = PaymentMethodResponse{
			Method:     string(dist.Method),
			Count:      dist.Count,
			Revenue:    dist.Revenue.String(),
			Percentage: dist.Percentage,
		}
	}
	for i, brand := range output.Trends.Brands {
		response.Brands[i] = BrandPerformanceResponse{
			Brand:   brand.Brand,
			Sales:   brand.Sales,
			Revenue: brand.Revenue.String(),
		}
	}
	for i, month := range output.Trends.Monthly {
		response.Monthly[i] = MonthlyComparisonResponse{
			Month:   month.Month,
			Revenue: month.Revenue.String(),
			Sales:   month.Sales,
		}
	}
	return response
}
