package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cepet-deal/backend/internal/application/adapter"
	"github.com/cepet-deal/backend/internal/domain/entity"
	domainerror "github.com/cepet-deal/backend/internal/domain/error"
)

type fakeTransactionRepo struct {
	transactions []*entity.Transaction
}

func (f *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	return nil
}

func (f *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, sort adapter.TransactionSort, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	// Export must never read through the paginated path.
	return nil, errors.New("unexpected paginated read during export")
}

func (f *fakeTransactionRepo) FindAllByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	matched := make([]*entity.Transaction, 0)
	for _, txn := range f.transactions {
		if filter.StartDate != nil && txn.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !txn.CreatedAt.Before(*filter.EndDate) {
			continue
		}
		matched = append(matched, txn)
	}
	return matched, nil
}

func (f *fakeTransactionRepo) ExistsAllByIDsAndDealer(ctx context.Context, ids []uuid.UUID, dealerID uuid.UUID) (bool, error) {
	return true, nil
}

func (f *fakeTransactionRepo) BulkDelete(ctx context.Context, ids []uuid.UUID, dealerID uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeListingRepo struct{}

func (f *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	return nil
}

func (f *fakeListingRepo) BrandsByListingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return map[uuid.UUID]string{}, nil
}

// captureRenderer records the snapshot and returns fixed bytes.
type captureRenderer struct {
	content  []byte
	err      error
	snapshot *Snapshot
}

func (r *captureRenderer) Render(snapshot *Snapshot) ([]byte, error) {
	r.snapshot = snapshot
	if r.err != nil {
		return nil, r.err
	}
	return r.content, nil
}

func TestExportReportUseCase(t *testing.T) {
	dealerID := uuid.New()
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	// More rows than any display page would hold.
	transactions := make([]*entity.Transaction, 237)
	for i := range transactions {
		transactions[i] = &entity.Transaction{
			ID:            uuid.New(),
			DealerID:      dealerID,
			ListingID:     uuid.New(),
			ReceiptNumber: fmt.Sprintf("KW-%04d", i),
			PaymentMethod: entity.PaymentMethodCash,
			TotalPrice:    decimal.NewFromInt(1000),
			CreatedAt:     now.AddDate(0, 0, -(i % 25)),
		}
	}

	newUseCase := func(document, spreadsheet *captureRenderer) *ExportReportUseCase {
		uc := NewExportReportUseCase(
			&fakeTransactionRepo{transactions: transactions},
			&fakeListingRepo{},
			document,
			spreadsheet,
		)
		uc.now = func() time.Time { return now }
		return uc
	}

	t.Run("pdf export renders the full dataset", func(t *testing.T) {
		document := &captureRenderer{content: []byte("%PDF-stub")}
		uc := newUseCase(document, &captureRenderer{})

		output, err := uc.Execute(context.Background(), ExportReportInput{
			DealerID: dealerID,
			Format:   FormatPDF,
			Range:    "30d",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.ContentType != "application/pdf" {
			t.Errorf("unexpected content type %s", output.ContentType)
		}
		if !strings.HasPrefix(output.Filename, "finance-report-30d-") || !strings.HasSuffix(output.Filename, ".pdf") {
			t.Errorf("unexpected filename %s", output.Filename)
		}
		if document.snapshot == nil {
			t.Fatal("expected the document renderer to receive a snapshot")
		}
		if len(document.snapshot.Transactions) != 237 {
			t.Errorf("expected all 237 transactions in the snapshot, got %d", len(document.snapshot.Transactions))
		}
		if document.snapshot.Stats.TotalSales != 237 {
			t.Errorf("expected stats over the full set, got %d sales", document.snapshot.Stats.TotalSales)
		}
		if document.snapshot.Comparison == nil {
			t.Error("expected a comparison for a preset range")
		}
		if !document.snapshot.GeneratedAt.Equal(now.Truncate(time.Minute)) {
			t.Errorf("expected generation time %v, got %v", now.Truncate(time.Minute), document.snapshot.GeneratedAt)
		}
	})

	t.Run("xlsx export dispatches to the spreadsheet renderer", func(t *testing.T) {
		spreadsheet := &captureRenderer{content: []byte("PK-stub")}
		uc := newUseCase(&captureRenderer{}, spreadsheet)

		output, err := uc.Execute(context.Background(), ExportReportInput{
			DealerID: dealerID,
			Format:   FormatXLSX,
			Range:    "7d",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.ContentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
			t.Errorf("unexpected content type %s", output.ContentType)
		}
		if !strings.HasSuffix(output.Filename, ".xlsx") {
			t.Errorf("unexpected filename %s", output.Filename)
		}
		if spreadsheet.snapshot == nil {
			t.Fatal("expected the spreadsheet renderer to receive a snapshot")
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		uc := newUseCase(&captureRenderer{}, &captureRenderer{})
		_, err := uc.Execute(context.Background(), ExportReportInput{
			DealerID: dealerID,
			Format:   "csv",
		})
		var expErr *domainerror.ExportError
		if !errors.As(err, &expErr) {
			t.Fatalf("expected ExportError, got %v", err)
		}
		if expErr.Code != domainerror.ErrCodeUnsupportedExportFormat {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeUnsupportedExportFormat, expErr.Code)
		}
	})

	t.Run("renderer failure maps to a generation error", func(t *testing.T) {
		document := &captureRenderer{err: errors.New("font missing")}
		uc := newUseCase(document, &captureRenderer{})
		_, err := uc.Execute(context.Background(), ExportReportInput{
			DealerID: dealerID,
			Format:   FormatPDF,
			Range:    "30d",
		})
		var expErr *domainerror.ExportError
		if !errors.As(err, &expErr) {
			t.Fatalf("expected ExportError, got %v", err)
		}
		if expErr.Code != domainerror.ErrCodeExportGeneration {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeExportGeneration, expErr.Code)
		}
	})

	t.Run("all range filename uses the generation date", func(t *testing.T) {
		document := &captureRenderer{content: []byte("%PDF-stub")}
		uc := newUseCase(document, &captureRenderer{})
		output, err := uc.Execute(context.Background(), ExportReportInput{
			DealerID: dealerID,
			Format:   FormatPDF,
			Range:    "all",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Filename != "finance-report-all-20260831.pdf" {
			t.Errorf("unexpected filename %s", output.Filename)
		}
		if document.snapshot.Comparison != nil {
			t.Error("expected no comparison for the all range")
		}
	})
}
