// Package export renders statements as downloadable XLSX and PDF files.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/AhmedGad3/construction-erp/internal/core"
)

const dateFormat = "2006-01-02"

// StatementXLSX renders a statement workbook: a summary sheet with the
// opening and closing balances and a transactions sheet with one row per
// entry. title names the report; subject names the supplier or the
// all-suppliers scope.
func StatementXLSX(title, subject string, stmt core.Statement) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	txSheet := "transactions"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(txSheet); err != nil {
		return nil, fmt.Errorf("create transactions sheet: %w", err)
	}

	_ = f.SetCellValue(summarySheet, "A1", title)
	_ = f.SetCellValue(summarySheet, "A3", "Scope")
	_ = f.SetCellValue(summarySheet, "B3", subject)
	_ = f.SetCellValue(summarySheet, "A4", "Opening Balance")
	_ = f.SetCellValue(summarySheet, "B4", stmt.OpeningBalance.InexactFloat64())
	_ = f.SetCellValue(summarySheet, "A5", "Closing Balance")
	_ = f.SetCellValue(summarySheet, "B5", stmt.ClosingBalance.InexactFloat64())
	_ = f.SetCellValue(summarySheet, "A6", "Transactions")
	_ = f.SetCellValue(summarySheet, "B6", len(stmt.Transactions))

	_ = f.SetCellValue(txSheet, "A1", "Date")
	_ = f.SetCellValue(txSheet, "B1", "Type")
	_ = f.SetCellValue(txSheet, "C1", "Reference")
	_ = f.SetCellValue(txSheet, "D1", "Supplier")
	_ = f.SetCellValue(txSheet, "E1", "Amount")
	_ = f.SetCellValue(txSheet, "F1", "Balance")
	for i, tx := range stmt.Transactions {
		row := i + 2
		_ = f.SetCellValue(txSheet, fmt.Sprintf("A%d", row), tx.Date.Format(dateFormat))
		_ = f.SetCellValue(txSheet, fmt.Sprintf("B%d", row), string(tx.Kind))
		_ = f.SetCellValue(txSheet, fmt.Sprintf("C%d", row), tx.Reference)
		_ = f.SetCellValue(txSheet, fmt.Sprintf("D%d", row), tx.Supplier.Display())
		_ = f.SetCellValue(txSheet, fmt.Sprintf("E%d", row), tx.Amount.InexactFloat64())
		_ = f.SetCellValue(txSheet, fmt.Sprintf("F%d", row), tx.Balance.InexactFloat64())
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// StatementPDF renders a statement as a single-column PDF with a
// transactions table. Labels render in their English variant; the core
// PDF fonts cannot shape Arabic script.
func StatementPDF(title, subject string, stmt core.Statement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, title)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Scope: %s", subject))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Opening Balance: %s", stmt.OpeningBalance.StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Closing Balance: %s", stmt.ClosingBalance.StringFixed(2)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(22, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(34, 6, "Reference", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Supplier", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Balance", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, tx := range stmt.Transactions {
		pdf.CellFormat(22, 6, tx.Date.Format(dateFormat), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, string(tx.Kind), "1", 0, "C", false, 0, "")
		pdf.CellFormat(34, 6, tx.Reference, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, tx.Supplier.Display(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(32, 6, tx.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, tx.Balance.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
