package finance

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cepet-deal/backend/internal/domain/entity"
)

// UnknownBrand is the sentinel used when the listing lookup cannot resolve
// a transaction's brand. Enrichment failure degrades, it never aborts.
const UnknownBrand = "Unknown"

// DailyTrend is one calendar day of the revenue/profit/sales series.
type DailyTrend struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Sales   int             `json:"sales"`
	Profit  decimal.Decimal `json:"profit"`
}

// PaymentMethodDistribution is one observed payment method's share.
type PaymentMethodDistribution struct {
	Method     entity.PaymentMethod `json:"method"`
	Count      int                  `json:"count"`
	Revenue    decimal.Decimal      `json:"revenue"`
	Percentage float64              `json:"percentage"`
}

// BrandPerformance is one of the top brands by revenue.
type BrandPerformance struct {
	Brand   string          `json:"brand"`
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MonthlyComparison is one calendar month's totals, keyed "YYYY-MM".
type MonthlyComparison struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Sales   int             `json:"sales"`
}

// FinanceTrends bundles the four independent trend folds for one interval.
type FinanceTrends struct {
	Daily          []DailyTrend                `json:"daily"`
	PaymentMethods []PaymentMethodDistribution `json:"payment_methods"`
	Brands         []BrandPerformance          `json:"brands"`
	Monthly        []MonthlyComparison         `json:"monthly"`
}

// topBrandCount limits brand performance to the top N brands by revenue.
const topBrandCount = 5

// ComputeTrends folds a transaction slice into FinanceTrends. All calendar
// bucketing uses UTC. The daily and monthly series are zero-filled so charts
// get a continuous axis: gap days inside the window appear with zero values.
// For the unbounded "all" window the series is clamped to start at the first
// day with activity, so an epoch start never produces decades of zero rows.
func ComputeTrends(interval DateInterval, transactions []*entity.Transaction, brands map[uuid.UUID]string) FinanceTrends {
	return FinanceTrends{
		Daily:          computeDailySeries(interval, transactions),
		PaymentMethods: computePaymentDistribution(transactions),
		Brands:         computeBrandPerformance(transactions, brands),
		Monthly:        computeMonthlySeries(interval, transactions),
	}
}

// dayOf truncates a time to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthOf truncates a time to its UTC calendar month.
func monthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// seriesBounds returns the first and last calendar day the series should
// cover, clamping the start to the earliest transaction day when the
// interval start predates all activity (the "all" window).
func seriesBounds(interval DateInterval, transactions []*entity.Transaction) (time.Time, time.Time, bool) {
	var earliest time.Time
	for _, txn := range transactions {
		day := dayOf(txn.CreatedAt)
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}

	start := dayOf(interval.Start)
	if !earliest.IsZero() && start.Before(earliest) {
		start = earliest
	}
	if earliest.IsZero() && !interval.Start.After(time.Unix(0, 0)) {
		// Unbounded window with no activity: nothing to plot.
		return time.Time{}, time.Time{}, false
	}

	// End is exclusive; the last plotted day is the one containing End,
	// unless End falls exactly on midnight.
	last := dayOf(interval.End)
	if interval.End.Equal(last) {
		last = last.AddDate(0, 0, -1)
	}
	if last.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, last, true
}

func computeDailySeries(interval DateInterval, transactions []*entity.Transaction) []DailyTrend {
	byDay := make(map[time.Time]*DailyTrend)
	for _, txn := range transactions {
		day := dayOf(txn.CreatedAt)
		point, ok := byDay[day]
		if !ok {
			point = &DailyTrend{Date: day, Revenue: decimal.Zero, Profit: decimal.Zero}
			byDay[day] = point
		}
		point.Revenue = point.Revenue.Add(txn.TotalPrice)
		point.Profit = point.Profit.Add(txn.Profit)
		point.Sales++
	}

	start, last, ok := seriesBounds(interval, transactions)
	if !ok {
		return []DailyTrend{}
	}

	series := make([]DailyTrend, 0, int(last.Sub(start).Hours()/24)+1)
	for day := start; !day.After(last); day = day.AddDate(0, 0, 1) {
		if point, ok := byDay[day]; ok {
			series = append(series, *point)
		} else {
			series = append(series, DailyTrend{Date: day, Revenue: decimal.Zero, Profit: decimal.Zero})
		}
	}
	return series
}

func computePaymentDistribution(transactions []*entity.Transaction) []PaymentMethodDistribution {
	byMethod := make(map[entity.PaymentMethod]*PaymentMethodDistribution)
	total := decimal.Zero
	for _, txn := range transactions {
		dist, ok := byMethod[txn.PaymentMethod]
		if !ok {
			dist = &PaymentMethodDistribution{Method: txn.PaymentMethod, Revenue: decimal.Zero}
			byMethod[txn.PaymentMethod] = dist
		}
		dist.Count++
		dist.Revenue = dist.Revenue.Add(txn.TotalPrice)
		total = total.Add(txn.TotalPrice)
	}

	distribution := make([]PaymentMethodDistribution, 0, len(byMethod))
	for _, method := range []entity.PaymentMethod{entity.PaymentMethodCash, entity.PaymentMethodCredit} {
		dist, ok := byMethod[method]
		if !ok {
			continue
		}
		if total.IsPositive() {
			dist.Percentage = ratioPercent(dist.Revenue, total)
		}
		distribution = append(distribution, *dist)
	}
	return distribution
}

func computeBrandPerformance(transactions []*entity.Transaction, brands map[uuid.UUID]string) []BrandPerformance {
	byBrand := make(map[string]*BrandPerformance)
	for _, txn := range transactions {
		brand, ok := brands[txn.ListingID]
		if !ok || brand == "" {
			brand = UnknownBrand
		}
		perf, ok := byBrand[brand]
		if !ok {
			perf = &BrandPerformance{Brand: brand, Revenue: decimal.Zero}
			byBrand[brand] = perf
		}
		perf.Sales++
		perf.Revenue = perf.Revenue.Add(txn.TotalPrice)
	}

	performance := make([]BrandPerformance, 0, len(byBrand))
	for _, perf := range byBrand {
		performance = append(performance, *perf)
	}
	sort.Slice(performance, func(i, j int) bool {
		if !performance[i].Revenue.Equal(performance[j].Revenue) {
			return performance[i].Revenue.GreaterThan(performance[j].Revenue)
		}
		return performance[i].Brand < performance[j].Brand
	})

	if len(performance) > topBrandCount {
		performance = performance[:topBrandCount]
	}
	return performance
}

func computeMonthlySeries(interval DateInterval, transactions []*entity.Transaction) []MonthlyComparison {
	byMonth := make(map[time.Time]*MonthlyComparison)
	for _, txn := range transactions {
		month := monthOf(txn.CreatedAt)
		point, ok := byMonth[month]
		if !ok {
			point = &MonthlyComparison{Month: month.Format("2006-01"), Revenue: decimal.Zero}
			byMonth[month] = point
		}
		point.Revenue = point.Revenue.Add(txn.TotalPrice)
		point.Sales++
	}

	start, last, ok := seriesBounds(interval, transactions)
	if !ok {
		return []MonthlyComparison{}
	}

	series := make([]MonthlyComparison, 0)
	for month := monthOf(start); !month.After(monthOf(last)); month = month.AddDate(0, 1, 0) {
		if point, ok := byMonth[month]; ok {
			series = append(series, *point)
		} else {
			series = append(series, MonthlyComparison{Month: month.Format("2006-01"), Revenue: decimal.Zero})
		}
	}
	return series
}
