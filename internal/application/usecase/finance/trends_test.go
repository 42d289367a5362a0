package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cepet-deal/backend/internal/domain/entity"
)

func trendTransaction(listingID uuid.UUID, method entity.PaymentMethod, totalPrice int64, createdAt time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:            uuid.New(),
		DealerID:      uuid.New(),
		ListingID:     listingID,
		PaymentMethod: method,
		TotalPrice:    decimal.NewFromInt(totalPrice),
		Profit:        decimal.NewFromInt(totalPrice / 10),
		CreatedAt:     createdAt,
	}
}

func TestComputeDailySeries(t *testing.T) {
	interval := DateInterval{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 6, 0, 0, 0, 0, time.UTC),
	}

	t.Run("zero-fills gap days", func(t *testing.T) {
		listing := uuid.New()
		transactions := []*entity.Transaction{
			trendTransaction(listing, entity.PaymentMethodCash, 100, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)),
			trendTransaction(listing, entity.PaymentMethodCash, 200, time.Date(2026, 8, 4, 17, 0, 0, 0, time.UTC)),
		}
		series := computeDailySeries(interval, transactions)

		if len(series) != 5 {
			t.Fatalf("expected 5 days, got %d", len(series))
		}
		if series[0].Sales != 1 || !series[0].Revenue.Equal(decimal.NewFromInt(100)) {
			t.Errorf("day 1: expected 1 sale / revenue 100, got %+v", series[0])
		}
		for _, i := range []int{1, 2, 4} {
			if series[i].Sales != 0 || !series[i].Revenue.IsZero() {
				t.Errorf("day %d: expected zero-filled, got %+v", i+1, series[i])
			}
		}
		if series[3].Sales != 1 || !series[3].Revenue.Equal(decimal.NewFromInt(200)) {
			t.Errorf("day 4: expected 1 sale / revenue 200, got %+v", series[3])
		}
	})

	t.Run("bounded empty window still zero-fills", func(t *testing.T) {
		series := computeDailySeries(interval, nil)
		if len(series) != 5 {
			t.Fatalf("expected 5 zero days, got %d", len(series))
		}
		for i, point := range series {
			if point.Sales != 0 || !point.Revenue.IsZero() || !point.Profit.IsZero() {
				t.Errorf("day %d: expected zeros, got %+v", i, point)
			}
		}
	})

	t.Run("unbounded window clamps to earliest activity", func(t *testing.T) {
		all := DateInterval{
			Start: time.Unix(0, 0).UTC(),
			End:   time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		}
		listing := uuid.New()
		transactions := []*entity.Transaction{
			trendTransaction(listing, entity.PaymentMethodCash, 100, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)),
		}
		series := computeDailySeries(all, transactions)
		if len(series) != 2 {
			t.Fatalf("expected 2 days (from first activity), got %d", len(series))
		}
		want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		if !series[0].Date.Equal(want) {
			t.Errorf("expected series to start at %v, got %v", want, series[0].Date)
		}
	})

	t.Run("unbounded empty window yields empty series", func(t *testing.T) {
		all := DateInterval{
			Start: time.Unix(0, 0).UTC(),
			End:   time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		}
		series := computeDailySeries(all, nil)
		if len(series) != 0 {
			t.Errorf("expected empty series, got %d days", len(series))
		}
	})
}

func TestComputePaymentDistribution(t *testing.T) {
	day := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	t.Run("percentages are shares of revenue", func(t *testing.T) {
		listing := uuid.New()
		transactions := []*entity.Transaction{
			trendTransaction(listing, entity.PaymentMethodCash, 300, day),
			trendTransaction(listing, entity.PaymentMethodCredit, 100, day),
			trendTransaction(listing, entity.PaymentMethodCash, 100, day),
		}
		distribution := computePaymentDistribution(transactions)

		if len(distribution) != 2 {
			t.Fatalf("expected 2 methods, got %d", len(distribution))
		}
		if distribution[0].Method != entity.PaymentMethodCash {
			t.Errorf("expected CASH first, got %s", distribution[0].Method)
		}
		if distribution[0].Percentage != 80 {
			t.Errorf("expected cash share 80, got %v", distribution[0].Percentage)
		}
		if distribution[1].Percentage != 20 {
			t.Errorf("expected credit share 20, got %v", distribution[1].Percentage)
		}

		sum := distribution[0].Percentage + distribution[1].Percentage
		if sum < 99.9 || sum > 100.1 {
			t.Errorf("expected shares to sum to ~100, got %v", sum)
		}
	})

	t.Run("only observed methods appear", func(t *testing.T) {
		listing := uuid.New()
		distribution := computePaymentDistribution([]*entity.Transaction{
			trendTransaction(listing, entity.PaymentMethodCredit, 100, day),
		})
		if len(distribution) != 1 {
			t.Fatalf("expected 1 method, got %d", len(distribution))
		}
		if distribution[0].Method != entity.PaymentMethodCredit {
			t.Errorf("expected CREDIT, got %s", distribution[0].Method)
		}
		if distribution[0].Percentage != 100 {
			t.Errorf("expected 100, got %v", distribution[0].Percentage)
		}
	})
}

func TestComputeBrandPerformance(t *testing.T) {
	day := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	t.Run("sorts by revenue and keeps the top five", func(t *testing.T) {
		brands := map[uuid.UUID]string{}
		transactions := make([]*entity.Transaction, 0, 7)
		for i, name := range []string{"Toyota", "Honda", "Suzuki", "Daihatsu", "Mitsubishi", "Nissan", "Mazda"} {
			listing := uuid.New()
			brands[listing] = name
			transactions = append(transactions, trendTransaction(listing, entity.PaymentMethodCash, int64(100*(7-i)), day))
		}
		performance := computeBrandPerformance(transactions, brands)

		if len(performance) != 5 {
			t.Fatalf("expected top 5, got %d", len(performance))
		}
		if performance[0].Brand != "Toyota" {
			t.Errorf("expected Toyota first, got %s", performance[0].Brand)
		}
		for i := 1; i < len(performance); i++ {
			if performance[i].Revenue.GreaterThan(performance[i-1].Revenue) {
				t.Errorf("expected descending revenue at index %d", i)
			}
		}
	})

	t.Run("ties break alphabetically", func(t *testing.T) {
		hondaListing := uuid.New()
		toyotaListing := uuid.New()
		brands := map[uuid.UUID]string{hondaListing: "Honda", toyotaListing: "Toyota"}
		performance := computeBrandPerformance([]*entity.Transaction{
			trendTransaction(toyotaListing, entity.PaymentMethodCash, 100, day),
			trendTransaction(hondaListing, entity.PaymentMethodCash, 100, day),
		}, brands)
		if performance[0].Brand != "Honda" {
			t.Errorf("expected Honda before Toyota on a tie, got %s", performance[0].Brand)
		}
	})

	t.Run("unresolved listings fall back to Unknown", func(t *testing.T) {
		performance := computeBrandPerformance([]*entity.Transaction{
			trendTransaction(uuid.New(), entity.PaymentMethodCash, 100, day),
		}, nil)
		if len(performance) != 1 || performance[0].Brand != UnknownBrand {
			t.Errorf("expected a single Unknown entry, got %+v", performance)
		}
	})
}

func TestComputeMonthlySeries(t *testing.T) {
	t.Run("zero-fills gap months", func(t *testing.T) {
		interval := DateInterval{
			Start: time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		}
		listing := uuid.New()
		transactions := []*entity.Transaction{
			trendTransaction(listing, entity.PaymentMethodCash, 100, time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)),
			trendTransaction(listing, entity.PaymentMethodCash, 200, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		}
		series := computeMonthlySeries(interval, transactions)

		if len(series) != 4 {
			t.Fatalf("expected 4 months, got %d", len(series))
		}
		if series[0].Month != "2026-05" || series[0].Sales != 1 {
			t.Errorf("expected 2026-05 with 1 sale, got %+v", series[0])
		}
		if series[1].Month != "2026-06" || series[1].Sales != 0 || !series[1].Revenue.IsZero() {
			t.Errorf("expected zero-filled 2026-06, got %+v", series[1])
		}
		if series[3].Month != "2026-08" || series[3].Sales != 1 {
			t.Errorf("expected 2026-08 with 1 sale, got %+v", series[3])
		}
	})
}

func TestComputeTrends(t *testing.T) {
	t.Run("bundles all four folds", func(t *testing.T) {
		interval := DateInterval{
			Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		}
		listing := uuid.New()
		trends := ComputeTrends(interval, []*entity.Transaction{
			trendTransaction(listing, entity.PaymentMethodCash, 100, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)),
		}, map[uuid.UUID]string{listing: "Toyota"})

		if len(trends.Daily) != 2 {
			t.Errorf("expected 2 daily points, got %d", len(trends.Daily))
		}
		if len(trends.PaymentMethods) != 1 {
			t.Errorf("expected 1 payment method, got %d", len(trends.PaymentMethods))
		}
		if len(trends.Brands) != 1 || trends.Brands[0].Brand != "Toyota" {
			t.Errorf("expected Toyota brand entry, got %+v", trends.Brands)
		}
		if len(trends.Monthly) != 1 || trends.Monthly[0].Month != "2026-08" {
			t.Errorf("expected one 2026-08 month, got %+v", trends.Monthly)
		}
	})
}
