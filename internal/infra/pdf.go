package infra

// pdf.go — PDF export of price suggestions using go-pdf/fpdf.
// Renders an A4 landscape table with one row per suggestion:
//   SKU, product name, previous -> suggested price, expected revenue and
//   margin deltas, status and creation date, plus the decision reason.

import (
	"fmt"
	"io"
	"time"

	"github.com/vaibh-c/Price-Pilot/internal/model"

	"github.com/go-pdf/fpdf"
)

// WriteSuggestionsReport renders the given suggestions as a PDF table and
// writes the document to w.
func WriteSuggestionsReport(w io.Writer, suggestions []model.Suggestion) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20 // total margins = 20mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Price Suggestions Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Column layout ─────────────────────────────────────────────────────────
	colSKU := contentW * 0.09
	colName := contentW * 0.17
	colPrev := contentW * 0.08
	colNext := contentW * 0.09
	colRev := contentW * 0.07
	colMargin := contentW * 0.07
	colStatus := contentW * 0.07
	colDate := contentW * 0.09
	colReason := contentW * 0.27

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colSKU, 6, "SKU", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colName, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colPrev, 6, "Current", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colNext, 6, "Suggested", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colRev, 6, "Rev %", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colMargin, 6, "Margin %", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colStatus, 6, "Status", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colDate, 6, "Created", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colReason, 6, "Reason", "B", 1, "L", false, 0, "")

	// ── Rows ──────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, s := range suggestions {
		sku, name := "", ""
		if s.Product != nil {
			sku = s.Product.SKU
			name = truncate(s.Product.Name, 26)
		}
		status := "pending"
		if s.Applied {
			status = "applied"
		}
		pdf.CellFormat(colSKU, 6, sku, "", 0, "L", false, 0, "")
		pdf.CellFormat(colName, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colPrev, 6, "$"+s.PreviousPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colNext, 6, "$"+s.SuggestedPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colRev, 6, s.ExpectedRevenueChangePct.StringFixed(1), "", 0, "R", false, 0, "")
		pdf.CellFormat(colMargin, 6, s.ExpectedMarginChangePct.StringFixed(1), "", 0, "R", false, 0, "")
		pdf.CellFormat(colStatus, 6, status, "", 0, "C", false, 0, "")
		pdf.CellFormat(colDate, 6, s.CreatedAt.Format("02/01/2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(colReason, 6, truncate(s.Reason, 58), "", 1, "L", false, 0, "")
	}

	if len(suggestions) == 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, "No suggestions found.", "", 1, "C", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%d suggestion(s)", len(suggestions)), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write report: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
