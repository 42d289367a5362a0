// Package export contains the report export use case. It re-derives the
// aggregates from the full transaction set so a rendered file never reflects
// a single display page.
package export

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cepet-deal/backend/internal/application/adapter"
	"github.com/cepet-deal/backend/internal/application/usecase/finance"
	"github.com/cepet-deal/backend/internal/domain/entity"
	domainerror "github.com/cepet-deal/backend/internal/domain/error"
)

// Format selects the rendered file type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Snapshot is everything a renderer needs to produce a report. It is fully
// materialized before rendering starts, so both formats of the same request
// describe the same data.
type Snapshot struct {
	DealerID     uuid.UUID
	RangeLabel   string
	Interval     finance.DateInterval
	Stats        finance.FinanceStats
	Comparison   *finance.FinanceComparison
	Trends       finance.FinanceTrends
	Transactions []*entity.Transaction
	GeneratedAt  time.Time
}

// DocumentRenderer renders a snapshot into a print-oriented document.
type DocumentRenderer interface {
	Render(snapshot *Snapshot) ([]byte, error)
}

// SpreadsheetRenderer renders a snapshot into a workbook.
type SpreadsheetRenderer interface {
	Render(snapshot *Snapshot) ([]byte, error)
}

// ExportReportInput represents the input for a report export.
type ExportReportInput struct {
	DealerID  uuid.UUID
	Format    Format
	Range     string
	StartDate *time.Time
	EndDate   *time.Time
}

// ExportReportOutput carries the rendered file.
type ExportReportOutput struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportReportUseCase builds a snapshot of the requested interval and hands
// it to the renderer for the requested format.
type ExportReportUseCase struct {
	transactionRepo adapter.TransactionRepository
	listingRepo     adapter.ListingRepository
	document        DocumentRenderer
	spreadsheet     SpreadsheetRenderer
	now             func() time.Time
}

// NewExportReportUseCase creates a new ExportReportUseCase instance.
func NewExportReportUseCase(
	transactionRepo adapter.TransactionRepository,
	listingRepo adapter.ListingRepository,
	document DocumentRenderer,
	spreadsheet SpreadsheetRenderer,
) *ExportReportUseCase {
	return &ExportReportUseCase{
		transactionRepo: transactionRepo,
		listingRepo:     listingRepo,
		document:        document,
		spreadsheet:     spreadsheet,
		now:             time.Now,
	}
}

// Execute resolves the period, loads the complete transaction set, recomputes
// the aggregates and renders the file. Export bypasses the report cache: a
// downloaded file must reflect the store at generation time.
func (uc *ExportReportUseCase) Execute(ctx context.Context, input ExportReportInput) (*ExportReportOutput, error) {
	renderer, contentType, extension, err := uc.rendererFor(input.Format)
	if err != nil {
		return nil, err
	}

	token, err := finance.ParseRangeToken(input.Range)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC().Truncate(time.Minute)
	current, previous, err := finance.ResolvePeriod(token, input.StartDate, input.EndDate, now)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindAllByFilter(ctx, adapter.TransactionFilter{
		DealerID:  input.DealerID,
		StartDate: &current.Start,
		EndDate:   &current.End,
	})
	if err != nil {
		return nil, domainerror.NewExportError(
			domainerror.ErrCodeExportGeneration,
			"failed to load transactions for export",
			err,
		)
	}

	snapshot := &Snapshot{
		DealerID:     input.DealerID,
		RangeLabel:   string(token),
		Interval:     current,
		Stats:        finance.ComputeStats(transactions),
		Trends:       finance.ComputeTrends(current, transactions, uc.resolveBrands(ctx, transactions)),
		Transactions: transactions,
		GeneratedAt:  now,
	}

	if previous != nil {
		previousTxns, err := uc.transactionRepo.FindAllByFilter(ctx, adapter.TransactionFilter{
			DealerID:  input.DealerID,
			StartDate: &previous.Start,
			EndDate:   &previous.End,
		})
		if err != nil {
			return nil, domainerror.NewExportError(
				domainerror.ErrCodeExportGeneration,
				"failed to load previous period transactions for export",
				err,
			)
		}
		comparison := finance.ComputeComparison(snapshot.Stats, finance.ComputeStats(previousTxns))
		snapshot.Comparison = &comparison
	}

	content, err := renderer.Render(snapshot)
	if err != nil {
		return nil, domainerror.NewExportError(
			domainerror.ErrCodeExportGeneration,
			"failed to render report",
			err,
		)
	}

	return &ExportReportOutput{
		Content:     content,
		ContentType: contentType,
		Filename:    buildFilename(token, current, now, extension),
	}, nil
}

func (uc *ExportReportUseCase) rendererFor(format Format) (interface {
	Render(*Snapshot) ([]byte, error)
}, string, string, error) {
	switch format {
	case FormatPDF:
		return uc.document, "application/pdf", "pdf", nil
	case FormatXLSX:
		return uc.spreadsheet, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", nil
	}
	return nil, "", "", domainerror.NewExportError(
		domainerror.ErrCodeUnsupportedExportFormat,
		"format must be pdf or xlsx",
		domainerror.ErrUnsupportedExportFormat,
	)
}

func (uc *ExportReportUseCase) resolveBrands(ctx context.Context, transactions []*entity.Transaction) map[uuid.UUID]string {
	if len(transactions) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(transactions))
	ids := make([]uuid.UUID, 0, len(transactions))
	for _, txn := range transactions {
		if _, ok := seen[txn.ListingID]; ok {
			continue
		}
		seen[txn.ListingID] = struct{}{}
		ids = append(ids, txn.ListingID)
	}
	brands, err := uc.listingRepo.BrandsByListingIDs(ctx, ids)
	if err != nil {
		return nil
	}
	return brands
}

// buildFilename names the file after the window it covers, e.g.
// "finance-report-30d-20260801-20260831.pdf". The "all" range uses the
// generation date instead of an epoch start.
func buildFilename(token finance.RangeToken, interval finance.DateInterval, now time.Time, extension string) string {
	const day = "20060102"
	start := interval.Start.Format(day)
	if token == finance.RangeAll {
		return "finance-report-all-" + now.Format(day) + "." + extension
	}
	// End is exclusive; the last covered day is the one just before it.
	end := interval.End.Add(-time.Nanosecond).Format(day)
	return "finance-report-" + string(token) + "-" + start + "-" + end + "." + extension
}
