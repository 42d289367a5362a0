package finance

import (
	"github.com/shopspring/decimal"

	"github.com/cepet-deal/backend/internal/domain/entity"
)

// FinanceStats holds the aggregate financial statistics for one interval.
// All fields are derived from the transaction set; nothing here is persisted.
type FinanceStats struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalSales       int             `json:"total_sales"`
	AverageSaleValue decimal.Decimal `json:"average_sale_value"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	ProfitMargin     float64         `json:"profit_margin"`
	CashSales        int             `json:"cash_sales"`
	CreditSales      int             `json:"credit_sales"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalPending     decimal.Decimal `json:"total_pending"`
	CollectionRate   float64         `json:"collection_rate"`
}

// FinanceComparison holds percentage changes versus the preceding interval
// of equal length. Each ratio is 0 when the previous aggregate is 0: a
// period with no prior baseline reports "no change", not "infinite change".
type FinanceComparison struct {
	RevenueChange float64 `json:"revenue_change"`
	SalesChange   float64 `json:"sales_change"`
	ProfitChange  float64 `json:"profit_change"`
}

// ComputeStats folds a transaction slice into FinanceStats. It is a pure
// function: the same set in any order yields the same output, and an empty
// set yields all-zero stats with ratios clamped to 0 rather than NaN.
func ComputeStats(transactions []*entity.Transaction) FinanceStats {
	stats := FinanceStats{
		TotalRevenue:     decimal.Zero,
		AverageSaleValue: decimal.Zero,
		TotalProfit:      decimal.Zero,
		TotalCollected:   decimal.Zero,
		TotalPending:     decimal.Zero,
	}

	for _, txn := range transactions {
		stats.TotalRevenue = stats.TotalRevenue.Add(txn.TotalPrice)
		stats.TotalProfit = stats.TotalProfit.Add(txn.Profit)
		stats.TotalCollected = stats.TotalCollected.Add(txn.Collected)
		stats.TotalPending = stats.TotalPending.Add(txn.RemainingPayment)

		switch txn.PaymentMethod {
		case entity.PaymentMethodCash:
			stats.CashSales++
		case entity.PaymentMethodCredit:
			stats.CreditSales++
		}
	}

	stats.TotalSales = len(transactions)
	if stats.TotalSales > 0 {
		stats.AverageSaleValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.TotalSales)))
	}

	if stats.TotalRevenue.IsPositive() {
		stats.ProfitMargin = ratioPercent(stats.TotalProfit, stats.TotalRevenue)
		stats.CollectionRate = ratioPercent(stats.TotalCollected, stats.TotalRevenue)
	}

	return stats
}

// ComputeComparison derives percentage changes between two stat sets.
func ComputeComparison(current, previous FinanceStats) FinanceComparison {
	return FinanceComparison{
		RevenueChange: percentChange(current.TotalRevenue, previous.TotalRevenue),
		SalesChange:   percentChangeInt(current.TotalSales, previous.TotalSales),
		ProfitChange:  percentChange(current.TotalProfit, previous.TotalProfit),
	}
}

// ratioPercent returns part/whole*100. Callers guarantee whole is non-zero.
func ratioPercent(part, whole decimal.Decimal) float64 {
	value, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Float64()
	return value
}

// percentChange returns (current-previous)/previous*100, clamped to 0 when
// previous is 0.
func percentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	value, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return value
}

// percentChangeInt is percentChange over integer counts.
func percentChangeInt(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}
