package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/AhmedGad3/construction-erp/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth (public) ─────────────────────────────────────────────────────────
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Protected API routes (401 JSON if unauthenticated) ────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// ── Suppliers ─────────────────────────────────────────────────────────
		r.Get("/api/suppliers", h.listSuppliers)
		r.Post("/api/suppliers", h.createSupplier)
		r.Get("/api/suppliers/{id}", h.getSupplier)
		r.Put("/api/suppliers/{id}", h.updateSupplier)
		r.Delete("/api/suppliers/{id}", h.deleteSupplier)
		r.Get("/api/suppliers/{id}/statement", h.supplierStatement)
		r.Get("/api/suppliers/{id}/statement/export.xlsx", h.supplierStatementXLSX)
		r.Get("/api/suppliers/{id}/statement/export.pdf", h.supplierStatementPDF)

		// ── Invoices ──────────────────────────────────────────────────────────
		r.Get("/api/invoices", h.listInvoices)
		r.Post("/api/invoices", h.createInvoice)
		r.Get("/api/invoices/{id}", h.getInvoice)
		r.Put("/api/invoices/{id}", h.updateInvoice)
		r.Delete("/api/invoices/{id}", h.deleteInvoice)
		r.Post("/api/invoices/{id}/mark-paid", h.markInvoicePaid)

		// ── Payments ──────────────────────────────────────────────────────────
		r.Get("/api/payments", h.listPayments)
		r.Post("/api/payments", h.createPayment)
		r.Get("/api/payments/{id}", h.getPayment)
		r.Put("/api/payments/{id}", h.updatePayment)
		r.Delete("/api/payments/{id}", h.deletePayment)

		// ── Warehouses and stock movements ────────────────────────────────────
		r.Get("/api/warehouses", h.listWarehouses)
		r.Post("/api/warehouses", h.createWarehouse)
		r.Put("/api/warehouses/{id}", h.updateWarehouse)
		r.Delete("/api/warehouses/{id}", h.deleteWarehouse)
		r.Get("/api/stock-movements", h.listStockMovements)
		r.Post("/api/stock-movements", h.createStockMovement)
		r.Put("/api/stock-movements/{id}", h.updateStockMovement)
		r.Delete("/api/stock-movements/{id}", h.deleteStockMovement)

		// ── Supplies ──────────────────────────────────────────────────────────
		r.Get("/api/supplies", h.listSupplies)

		// ── Reports ───────────────────────────────────────────────────────────
		r.Get("/api/reports/dashboard", h.dashboardReport)
		r.Get("/api/reports/monthly-summary", h.monthlySummaryReport)
		r.Get("/api/reports/financial-movements", h.financialMovementsReport)
		r.Get("/api/reports/financial-movements/export.xlsx", h.financialMovementsXLSX)
		r.Get("/api/reports/financial-movements/export.pdf", h.financialMovementsPDF)
		r.Get("/api/reports/top-suppliers", h.topSuppliersReport)
		r.Get("/api/reports/payment-methods", h.paymentMethodsReport)
		r.Get("/api/reports/overdue-invoices", h.overdueInvoicesReport)
		r.Get("/api/reports/purchase-history", h.purchaseHistoryReport)
		r.Get("/api/reports/payment-history", h.paymentHistoryReport)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// idParam extracts the {id} URL parameter as a positive integer.
func idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// dateRange extracts the optional from/to query parameters.
func dateRange(r *http.Request) (from, to string) {
	q := r.URL.Query()
	return q.Get("from"), q.Get("to")
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
