package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cepet-deal/backend/internal/application/usecase/export"
	"github.com/cepet-deal/backend/internal/domain/valueobject"
)

// Sheet names of the rendered workbook.
const (
	sheetSummary      = "Summary"
	sheetTransactions = "Transactions"
	sheetDailyTrends  = "Daily Trends"
)

// ExcelRenderer implements export.SpreadsheetRenderer as a three-sheet
// workbook: Summary, Transactions and Daily Trends.
type ExcelRenderer struct{}

// NewExcelRenderer creates a new spreadsheet renderer.
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

// Render produces the workbook. Document properties carry the snapshot's
// generation time so the same snapshot always yields the same cells and
// metadata.
func (r *ExcelRenderer) Render(snapshot *export.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	created := snapshot.GeneratedAt.Format("2006-01-02T15:04:05Z")
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:    "Laporan Keuangan",
		Creator:  "CepetDeal",
		Created:  created,
		Modified: created,
	}); err != nil {
		return nil, err
	}

	if err := r.writeSummary(f, snapshot); err != nil {
		return nil, err
	}
	if err := r.writeTransactions(f, snapshot); err != nil {
		return nil, err
	}
	if err := r.writeDailyTrends(f, snapshot); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *ExcelRenderer) writeSummary(f *excelize.File, snapshot *export.Snapshot) error {
	// The default sheet becomes Summary.
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}

	stats := snapshot.Stats
	rows := [][]interface{}{
		{"Laporan Keuangan"},
		{"Periode", periodLabel(snapshot)},
		{"Dibuat (UTC)", snapshot.GeneratedAt.Format("2006-01-02 15:04")},
		{},
		{"Total Pendapatan", valueobject.FormatRupiah(stats.TotalRevenue)},
		{"Total Penjualan", fmt.Sprintf("%d", stats.TotalSales)},
		{"Rata-rata Nilai Penjualan", valueobject.FormatRupiah(stats.AverageSaleValue)},
		{"Total Keuntungan", valueobject.FormatRupiah(stats.TotalProfit)},
		{"Margin Keuntungan", valueobject.FormatPercent(stats.ProfitMargin)},
		{"Penjualan Tunai", fmt.Sprintf("%d", stats.CashSales)},
		{"Penjualan Kredit", fmt.Sprintf("%d", stats.CreditSales)},
		{"Total Terkumpul", valueobject.FormatRupiah(stats.TotalCollected)},
		{"Total Tertunda", valueobject.FormatRupiah(stats.TotalPending)},
		{"Tingkat Penagihan", valueobject.FormatPercent(stats.CollectionRate)},
	}
	if snapshot.Comparison != nil {
		rows = append(rows,
			[]interface{}{"Perubahan Pendapatan", valueobject.FormatPercent(snapshot.Comparison.RevenueChange)},
			[]interface{}{"Perubahan Penjualan", valueobject.FormatPercent(snapshot.Comparison.SalesChange)},
			[]interface{}{"Perubahan Keuntungan", valueobject.FormatPercent(snapshot.Comparison.ProfitChange)},
		)
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Metode Pembayaran"},
		[]interface{}{"Metode", "Jumlah", "Pendapatan", "Persentase"},
	)
	for _, dist := range snapshot.Trends.PaymentMethods {
		rows = append(rows, []interface{}{
			string(dist.Method),
			dist.Count,
			valueobject.FormatRupiah(dist.Revenue),
			valueobject.FormatPercent(dist.Percentage),
		})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Merek Terlaris"},
		[]interface{}{"Merek", "Penjualan", "Pendapatan"},
	)
	for _, brand := range snapshot.Trends.Brands {
		rows = append(rows, []interface{}{
			brand.Brand,
			brand.Sales,
			valueobject.FormatRupiah(brand.Revenue),
		})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Perbandingan Bulanan"},
		[]interface{}{"Bulan", "Pendapatan", "Penjualan"},
	)
	for _, month := range snapshot.Trends.Monthly {
		rows = append(rows, []interface{}{
			month.Month,
			valueobject.FormatRupiah(month.Revenue),
			month.Sales,
		})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &rows[i]); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetSummary, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(sheetSummary, "B", "D", 24)
}

func (r *ExcelRenderer) writeTransactions(f *excelize.File, snapshot *export.Snapshot) error {
	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return err
	}

	header := []interface{}{
		"No. Kwitansi", "Kendaraan", "Pembeli", "Metode",
		"Harga Total", "Uang Muka", "Tanda Jadi", "Terkumpul",
		"Sisa Bayar", "Keuntungan", "Tanggal",
	}
	if err := f.SetSheetRow(sheetTransactions, "A1", &header); err != nil {
		return err
	}

	for i, txn := range snapshot.Transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			txn.ReceiptNumber,
			txn.Vehicle,
			txn.Buyer,
			string(txn.PaymentMethod),
			valueobject.FormatRupiah(txn.TotalPrice),
			valueobject.FormatRupiah(txn.DownPayment),
			valueobject.FormatRupiah(txn.TandaJadi),
			valueobject.FormatRupiah(txn.Collected),
			valueobject.FormatRupiah(txn.RemainingPayment),
			valueobject.FormatRupiah(txn.Profit),
			txn.CreatedAt.UTC().Format("2006-01-02"),
		}
		if err := f.SetSheetRow(sheetTransactions, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetTransactions, "A", "K", 18)
}

func (r *ExcelRenderer) writeDailyTrends(f *excelize.File, snapshot *export.Snapshot) error {
	if _, err := f.NewSheet(sheetDailyTrends); err != nil {
		return err
	}

	header := []interface{}{"Tanggal", "Pendapatan", "Penjualan", "Keuntungan"}
	if err := f.SetSheetRow(sheetDailyTrends, "A1", &header); err != nil {
		return err
	}

	for i, point := range snapshot.Trends.Daily {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			point.Date.Format("2006-01-02"),
			valueobject.FormatRupiah(point.Revenue),
			point.Sales,
			valueobject.FormatRupiah(point.Profit),
		}
		if err := f.SetSheetRow(sheetDailyTrends, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetDailyTrends, "A", "D", 18)
}
