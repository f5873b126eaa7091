package web

import (
	"fmt"
	"net/http"

	"github.com/AhmedGad3/construction-erp/internal/core"
	"github.com/AhmedGad3/construction-erp/internal/export"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(body)
}

func (h *Handler) supplierStatementExport(w http.ResponseWriter, r *http.Request) (string, *core.Statement, bool) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid supplier id", "BAD_REQUEST", http.StatusBadRequest)
		return "", nil, false
	}
	from, to := dateRange(r)
	report, err := h.svc.GetSupplierStatement(r.Context(), id, from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return "", nil, false
	}
	return report.Supplier.Name.Display(), &report.Statement, true
}

// supplierStatementXLSX handles GET /api/suppliers/{id}/statement/export.xlsx.
func (h *Handler) supplierStatementXLSX(w http.ResponseWriter, r *http.Request) {
	subject, stmt, ok := h.supplierStatementExport(w, r)
	if !ok {
		return
	}
	body, err := export.StatementXLSX("Supplier Statement", subject, *stmt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeAttachment(w, xlsxContentType, "supplier-statement.xlsx", body)
}

// supplierStatementPDF handles GET /api/suppliers/{id}/statement/export.pdf.
func (h *Handler) supplierStatementPDF(w http.ResponseWriter, r *http.Request) {
	subject, stmt, ok := h.supplierStatementExport(w, r)
	if !ok {
		return
	}
	body, err := export.StatementPDF("Supplier Statement", subject, *stmt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeAttachment(w, pdfContentType, "supplier-statement.pdf", body)
}

func (h *Handler) financialMovementsExport(w http.ResponseWriter, r *http.Request) (*core.Statement, bool) {
	from, to := dateRange(r)
	stmt, err := h.svc.GetFinancialMovements(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	return stmt, true
}

// financialMovementsXLSX handles GET /api/reports/financial-movements/export.xlsx.
func (h *Handler) financialMovementsXLSX(w http.ResponseWriter, r *http.Request) {
	stmt, ok := h.financialMovementsExport(w, r)
	if !ok {
		return
	}
	body, err := export.StatementXLSX("Financial Movements", "All suppliers", *stmt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeAttachment(w, xlsxContentType, "financial-movements.xlsx", body)
}

// financialMovementsPDF handles GET /api/reports/financial-movements/export.pdf.
func (h *Handler) financialMovementsPDF(w http.ResponseWriter, r *http.Request) {
	stmt, ok := h.financialMovementsExport(w, r)
	if !ok {
		return
	}
	body, err := export.StatementPDF("Financial Movements", "All suppliers", *stmt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeAttachment(w, pdfContentType, "financial-movements.pdf", body)
}
