package web

import (
	"net/http"
	"strconv"
)

// dashboardReport handles GET /api/reports/dashboard. It bundles the
// headline stats, the monthly purchase/payment series, the top supplier
// standings, the payment method split, and recent activity in one response.
func (h *Handler) dashboardReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}

func (h *Handler) monthlySummaryReport(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.svc.GetMonthlySummary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, buckets)
}

// financialMovementsReport handles GET /api/reports/financial-movements,
// the cross-supplier transaction log with running balance.
func (h *Handler) financialMovementsReport(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	statement, err := h.svc.GetFinancialMovements(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, statement)
}

// topSuppliersReport handles GET /api/reports/top-suppliers?limit=N.
// Only suppliers with a positive outstanding balance appear.
func (h *Handler) topSuppliersReport(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, r, "invalid limit", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		limit = n
	}
	standings, err := h.svc.GetTopSuppliers(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, standings)
}

func (h *Handler) paymentMethodsReport(w http.ResponseWriter, r *http.Request) {
	shares, err := h.svc.GetPaymentMethods(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, shares)
}

func (h *Handler) overdueInvoicesReport(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	rows, err := h.svc.GetOverdueInvoices(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rows)
}

func (h *Handler) purchaseHistoryReport(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	rows, err := h.svc.GetPurchaseHistory(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rows)
}

func (h *Handler) paymentHistoryReport(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	rows, err := h.svc.GetPaymentHistory(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rows)
}
