package report

import (
	"bytes"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cepet-deal/backend/internal/application/usecase/export"
	"github.com/cepet-deal/backend/internal/application/usecase/finance"
	"github.com/cepet-deal/backend/internal/domain/entity"
)

func testSnapshot() *export.Snapshot {
	generatedAt := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	interval := finance.DateInterval{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}

	listing := uuid.New()
	transactions := make([]*entity.Transaction, 0, 60)
	for i := 0; i < 60; i++ {
		day := interval.Start.AddDate(0, 0, i%29)
		transactions = append(transactions, &entity.Transaction{
			ID:               uuid.New(),
			DealerID:         uuid.New(),
			ListingID:        listing,
			ReceiptNumber:    "KW-0042",
			Vehicle:          "Toyota Avanza 2021",
			Buyer:            "Budi Santoso",
			PaymentMethod:    entity.PaymentMethodCash,
			TotalPrice:       decimal.NewFromInt(185000000),
			DownPayment:      decimal.NewFromInt(50000000),
			TandaJadi:        decimal.NewFromInt(5000000),
			Collected:        decimal.NewFromInt(100000000),
			RemainingPayment: decimal.NewFromInt(85000000),
			Profit:           decimal.NewFromInt(15000000),
			CreatedAt:        day.Add(9 * time.Hour),
		})
	}

	stats := finance.ComputeStats(transactions)
	comparison := finance.ComputeComparison(stats, finance.FinanceStats{
		TotalRevenue: decimal.NewFromInt(9000000000),
		TotalSales:   50,
		TotalProfit:  decimal.NewFromInt(700000000),
	})

	return &export.Snapshot{
		DealerID:     uuid.New(),
		RangeLabel:   "30d",
		Interval:     interval,
		Stats:        stats,
		Comparison:   &comparison,
		Trends:       finance.ComputeTrends(interval, transactions, map[uuid.UUID]string{listing: "Toyota"}),
		Transactions: transactions,
		GeneratedAt:  generatedAt,
	}
}

func TestTruncate(t *testing.T) {
	t.Run("short strings pass through", func(t *testing.T) {
		if got := truncate("Toyota Avanza", 26); got != "Toyota Avanza" {
			t.Errorf("unexpected result %q", got)
		}
	})

	t.Run("long strings are shortened with an ellipsis", func(t *testing.T) {
		got := truncate("Mitsubishi Pajero Sport Dakar Ultimate", 20)
		if utf8.RuneCountInString(got) != 20 {
			t.Errorf("expected 20 runes, got %d (%q)", utf8.RuneCountInString(got), got)
		}
		if got != "Mitsubishi Pajero S…" {
			t.Errorf("unexpected result %q", got)
		}
	})

	t.Run("cuts on rune boundaries", func(t *testing.T) {
		// Every rune here is multi-byte; a byte-indexed cut would split one.
		got := truncate("ééééééééééé", 6)
		if !utf8.ValidString(got) {
			t.Fatalf("result is not valid UTF-8: %q", got)
		}
		if got != "ééééé…" {
			t.Errorf("unexpected result %q", got)
		}
	})
}

func TestPDFRenderer(t *testing.T) {
	renderer := NewPDFRenderer()

	t.Run("produces a PDF document", func(t *testing.T) {
		content, err := renderer.Render(testSnapshot())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(content, []byte("%PDF")) {
			t.Error("expected output to start with the PDF magic bytes")
		}
		if len(content) < 1024 {
			t.Errorf("suspiciously small document: %d bytes", len(content))
		}
	})

	t.Run("same snapshot renders byte-identical output", func(t *testing.T) {
		snapshot := testSnapshot()
		first, err := renderer.Render(snapshot)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := renderer.Render(snapshot)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Error("expected deterministic output for the same snapshot")
		}
	})

	t.Run("renders non-ASCII vehicle and buyer names", func(t *testing.T) {
		snapshot := testSnapshot()
		for _, txn := range snapshot.Transactions {
			txn.Vehicle = "Škoda Octavia édition spéciale longue"
			txn.Buyer = "José Müller Ñoño García"
		}

		content, err := renderer.Render(snapshot)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(content, []byte("%PDF")) {
			t.Error("expected a valid document")
		}
	})

	t.Run("renders an empty period", func(t *testing.T) {
		snapshot := testSnapshot()
		snapshot.Transactions = nil
		snapshot.Stats = finance.ComputeStats(nil)
		snapshot.Trends = finance.ComputeTrends(snapshot.Interval, nil, nil)
		snapshot.Comparison = nil

		content, err := renderer.Render(snapshot)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(content, []byte("%PDF")) {
			t.Error("expected a valid document for an empty period")
		}
	})
}
