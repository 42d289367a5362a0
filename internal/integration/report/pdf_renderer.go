// Package report renders finance snapshots into downloadable files.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/cepet-deal/backend/internal/application/usecase/export"
	"github.com/cepet-deal/backend/internal/domain/valueobject"
)

// PDFRenderer implements export.DocumentRenderer with a print-oriented A4
// layout: report header, summary block, payment and brand tables, then the
// full transaction table flowing across pages.
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF document. The creation date embedded in the file
// metadata is the snapshot's generation time, so rendering the same snapshot
// twice yields byte-identical output.
func (r *PDFRenderer) Render(snapshot *export.Snapshot) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(snapshot.GeneratedAt)
	pdf.SetModificationDate(snapshot.GeneratedAt)
	pdf.SetTitle("Laporan Keuangan", false)
	pdf.SetAuthor("CepetDeal", false)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Halaman %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	// The core fonts are cp1252; user-entered text (vehicles, buyers,
	// brands) must be translated or non-ASCII runes render as mojibake.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	r.renderHeader(pdf, snapshot)
	r.renderSummary(pdf, snapshot)
	r.renderPaymentMethods(pdf, snapshot)
	r.renderBrands(pdf, snapshot, tr)
	r.renderTransactions(pdf, snapshot, tr)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) renderHeader(pdf *fpdf.Fpdf, snapshot *export.Snapshot) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(33, 33, 33)
	pdf.CellFormat(0, 10, "Laporan Keuangan", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, fmt.Sprintf("Periode: %s", periodLabel(snapshot)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Dibuat: %s UTC", snapshot.GeneratedAt.Format("02 Jan 2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (r *PDFRenderer) renderSummary(pdf *fpdf.Fpdf, snapshot *export.Snapshot) {
	r.sectionTitle(pdf, "Ringkasan")

	stats := snapshot.Stats
	rows := [][2]string{
		{"Total Pendapatan", valueobject.FormatRupiah(stats.TotalRevenue)},
		{"Total Penjualan", fmt.Sprintf("%d unit", stats.TotalSales)},
		{"Rata-rata Nilai Penjualan", valueobject.FormatRupiah(stats.AverageSaleValue)},
		{"Total Keuntungan", valueobject.FormatRupiah(stats.TotalProfit)},
		{"Margin Keuntungan", valueobject.FormatPercent(stats.ProfitMargin)},
		{"Penjualan Tunai / Kredit", fmt.Sprintf("%d / %d", stats.CashSales, stats.CreditSales)},
		{"Total Terkumpul", valueobject.FormatRupiah(stats.TotalCollected)},
		{"Total Tertunda", valueobject.FormatRupiah(stats.TotalPending)},
		{"Tingkat Penagihan", valueobject.FormatPercent(stats.CollectionRate)},
	}
	if snapshot.Comparison != nil {
		rows = append(rows,
			[2]string{"Perubahan Pendapatan", valueobject.FormatPercent(snapshot.Comparison.RevenueChange)},
			[2]string{"Perubahan Penjualan", valueobject.FormatPercent(snapshot.Comparison.SalesChange)},
			[2]string{"Perubahan Keuntungan", valueobject.FormatPercent(snapshot.Comparison.ProfitChange)},
		)
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(33, 33, 33)
	for i, row := range rows {
		fill := i%2 == 0
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(70, 7, row[0], "", 0, "L", fill, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "R", fill, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) renderPaymentMethods(pdf *fpdf.Fpdf, snapshot *export.Snapshot) {
	if len(snapshot.Trends.PaymentMethods) == 0 {
		return
	}
	r.sectionTitle(pdf, "Metode Pembayaran")
	r.tableHeader(pdf, []tableColumn{
		{"Metode", 40, "L"},
		{"Jumlah", 30, "R"},
		{"Pendapatan", 60, "R"},
		{"Persentase", 0, "R"},
	})

	pdf.SetFont("Helvetica", "", 9)
	for _, dist := range snapshot.Trends.PaymentMethods {
		pdf.CellFormat(40, 7, string(dist.Method), "B", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", dist.Count), "B", 0, "R", false, 0, "")
		pdf.CellFormat(60, 7, valueobject.FormatRupiah(dist.Revenue), "B", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, valueobject.FormatPercent(dist.Percentage), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) renderBrands(pdf *fpdf.Fpdf, snapshot *export.Snapshot, tr func(string) string) {
	if len(snapshot.Trends.Brands) == 0 {
		return
	}
	r.sectionTitle(pdf, "Merek Terlaris")
	r.tableHeader(pdf, []tableColumn{
		{"Merek", 70, "L"},
		{"Penjualan", 40, "R"},
		{"Pendapatan", 0, "R"},
	})

	pdf.SetFont("Helvetica", "", 9)
	for _, brand := range snapshot.Trends.Brands {
		pdf.CellFormat(70, 7, tr(brand.Brand), "B", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", brand.Sales), "B", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, valueobject.FormatRupiah(brand.Revenue), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) renderTransactions(pdf *fpdf.Fpdf, snapshot *export.Snapshot, tr func(string) string) {
	pdf.AddPage()
	r.sectionTitle(pdf, fmt.Sprintf("Transaksi (%d)", len(snapshot.Transactions)))

	columns := []tableColumn{
		{"No. Kwitansi", 28, "L"},
		{"Kendaraan", 38, "L"},
		{"Pembeli", 30, "L"},
		{"Metode", 18, "L"},
		{"Harga Total", 30, "R"},
		{"Sisa Bayar", 30, "R"},
		{"Tanggal", 0, "L"},
	}
	r.tableHeader(pdf, columns)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(33, 33, 33)
	for _, txn := range snapshot.Transactions {
		// Repeat the header after an automatic page break.
		if pdf.GetY() > 260 {
			pdf.AddPage()
			r.tableHeader(pdf, columns)
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(33, 33, 33)
		}
		pdf.CellFormat(28, 6, txn.ReceiptNumber, "B", 0, "L", false, 0, "")
		pdf.CellFormat(38, 6, tr(truncate(txn.Vehicle, 26)), "B", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, tr(truncate(txn.Buyer, 20)), "B", 0, "L", false, 0, "")
		pdf.CellFormat(18, 6, string(txn.PaymentMethod), "B", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, valueobject.FormatRupiah(txn.TotalPrice), "B", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, valueobject.FormatRupiah(txn.RemainingPayment), "B", 0, "R", false, 0, "")
		pdf.CellFormat(0, 6, txn.CreatedAt.UTC().Format("02/01/2006"), "B", 1, "L", false, 0, "")
	}
}

type tableColumn struct {
	title string
	width float64
	align string
}

func (r *PDFRenderer) sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(33, 33, 33)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (r *PDFRenderer) tableHeader(pdf *fpdf.Fpdf, columns []tableColumn) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetTextColor(33, 33, 33)
	for i, col := range columns {
		next := 0
		if i == len(columns)-1 {
			next = 1
		}
		pdf.CellFormat(col.width, 7, col.title, "B", next, col.align, true, 0, "")
	}
}

func periodLabel(snapshot *export.Snapshot) string {
	const layout = "02 Jan 2006"
	if snapshot.RangeLabel == "all" {
		return fmt.Sprintf("Semua transaksi s/d %s", snapshot.GeneratedAt.Format(layout))
	}
	// End is exclusive; show the last covered day.
	end := snapshot.Interval.End.Add(-time.Nanosecond)
	return fmt.Sprintf("%s - %s", snapshot.Interval.Start.Format(layout), end.Format(layout))
}

// truncate shortens a string to max runes. Counting bytes instead would cut
// multi-byte characters in half.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
