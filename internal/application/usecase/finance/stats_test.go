package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cepet-deal/backend/internal/domain/entity"
)

func makeTransaction(method entity.PaymentMethod, totalPrice, collected, profit int64, createdAt time.Time) *entity.Transaction {
	total := decimal.NewFromInt(totalPrice)
	col := decimal.NewFromInt(collected)
	return &entity.Transaction{
		ID:               uuid.New(),
		DealerID:         uuid.New(),
		ListingID:        uuid.New(),
		PaymentMethod:    method,
		TotalPrice:       total,
		Collected:        col,
		RemainingPayment: total.Sub(col),
		Profit:           decimal.NewFromInt(profit),
		CreatedAt:        createdAt,
	}
}

func TestComputeStats(t *testing.T) {
	day := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	t.Run("empty set yields all zeros", func(t *testing.T) {
		stats := ComputeStats(nil)
		if !stats.TotalRevenue.IsZero() || stats.TotalSales != 0 {
			t.Errorf("expected zero totals, got %+v", stats)
		}
		if stats.ProfitMargin != 0 || stats.CollectionRate != 0 {
			t.Errorf("expected zero ratios, got margin=%v rate=%v", stats.ProfitMargin, stats.CollectionRate)
		}
		if !stats.AverageSaleValue.IsZero() {
			t.Errorf("expected zero average, got %v", stats.AverageSaleValue)
		}
	})

	t.Run("aggregates a mixed set", func(t *testing.T) {
		transactions := []*entity.Transaction{
			makeTransaction(entity.PaymentMethodCash, 100, 100, 20, day),
			makeTransaction(entity.PaymentMethodCredit, 200, 150, 40, day),
			makeTransaction(entity.PaymentMethodCash, 300, 250, 60, day),
		}
		stats := ComputeStats(transactions)

		if !stats.TotalRevenue.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected revenue 600, got %v", stats.TotalRevenue)
		}
		if stats.TotalSales != 3 {
			t.Errorf("expected 3 sales, got %d", stats.TotalSales)
		}
		if !stats.AverageSaleValue.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected average 200, got %v", stats.AverageSaleValue)
		}
		if !stats.TotalProfit.Equal(decimal.NewFromInt(120)) {
			t.Errorf("expected profit 120, got %v", stats.TotalProfit)
		}
		if !stats.TotalCollected.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected collected 500, got %v", stats.TotalCollected)
		}
		if !stats.TotalPending.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected pending 100, got %v", stats.TotalPending)
		}
		if stats.CashSales != 2 || stats.CreditSales != 1 {
			t.Errorf("expected 2 cash / 1 credit, got %d / %d", stats.CashSales, stats.CreditSales)
		}
		if stats.ProfitMargin != 20 {
			t.Errorf("expected margin 20, got %v", stats.ProfitMargin)
		}
		wantRate := float64(500) / 600 * 100
		if diff := stats.CollectionRate - wantRate; diff > 0.0001 || diff < -0.0001 {
			t.Errorf("expected rate %v, got %v", wantRate, stats.CollectionRate)
		}
	})

	t.Run("order does not change the result", func(t *testing.T) {
		a := makeTransaction(entity.PaymentMethodCash, 100, 50, 10, day)
		b := makeTransaction(entity.PaymentMethodCredit, 200, 200, 30, day)
		forward := ComputeStats([]*entity.Transaction{a, b})
		backward := ComputeStats([]*entity.Transaction{b, a})
		if !forward.TotalRevenue.Equal(backward.TotalRevenue) ||
			forward.ProfitMargin != backward.ProfitMargin ||
			forward.CollectionRate != backward.CollectionRate {
			t.Errorf("expected identical stats, got %+v vs %+v", forward, backward)
		}
	})
}

func TestComputeComparison(t *testing.T) {
	t.Run("computes percentage changes", func(t *testing.T) {
		current := FinanceStats{
			TotalRevenue: decimal.NewFromInt(150),
			TotalSales:   3,
			TotalProfit:  decimal.NewFromInt(30),
		}
		previous := FinanceStats{
			TotalRevenue: decimal.NewFromInt(100),
			TotalSales:   2,
			TotalProfit:  decimal.NewFromInt(40),
		}
		comparison := ComputeComparison(current, previous)
		if comparison.RevenueChange != 50 {
			t.Errorf("expected revenue change 50, got %v", comparison.RevenueChange)
		}
		if comparison.SalesChange != 50 {
			t.Errorf("expected sales change 50, got %v", comparison.SalesChange)
		}
		if comparison.ProfitChange != -25 {
			t.Errorf("expected profit change -25, got %v", comparison.ProfitChange)
		}
	})

	t.Run("zero previous clamps to zero", func(t *testing.T) {
		current := FinanceStats{
			TotalRevenue: decimal.NewFromInt(150),
			TotalSales:   3,
			TotalProfit:  decimal.NewFromInt(30),
		}
		comparison := ComputeComparison(current, FinanceStats{
			TotalRevenue: decimal.Zero,
			TotalProfit:  decimal.Zero,
		})
		if comparison.RevenueChange != 0 || comparison.SalesChange != 0 || comparison.ProfitChange != 0 {
			t.Errorf("expected all changes clamped to 0, got %+v", comparison)
		}
	})
}
