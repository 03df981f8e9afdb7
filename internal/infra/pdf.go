package infra

// pdf.go — corte de caja PDF generation using go-pdf/fpdf.
// Renders the daily reconciliation table: one row per local calendar day
// with gross (total sold) and net (ganancia) columns, newest day first,
// plus lifetime totals at the bottom.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/report"
)

// GenerateCorteCajaPDF writes the daily reconciliation report to
// storagePath (created if needed) and returns the absolute file path.
func GenerateCorteCajaPDF(points []report.DailyPoint, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("corte_caja_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Inventario El Balcon", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Corte de Caja / Resumen Diario", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Generado: "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.34 // day
	col2 := contentW * 0.33 // gross
	col3 := contentW * 0.33 // net

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Dia", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Ganancia Bruta (Venta Total)", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, "Ganancia Neta (Utilidad)", "B", 1, "R", false, 0, "")

	// ── Rows, newest day first ────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	totalBruta := decimal.Zero
	totalNeta := decimal.Zero
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		pdf.CellFormat(col1, 6, p.Date, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "$"+p.TotalSales.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+p.Gain.StringFixed(2), "", 1, "R", false, 0, "")
		totalBruta = totalBruta.Add(p.TotalSales)
		totalNeta = totalNeta.Add(p.Gain)
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1, 7, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "$"+totalBruta.StringFixed(2), "", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, "$"+totalNeta.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
