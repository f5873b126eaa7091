package web

import (
	"net/http"

	"github.com/AhmedGad3/construction-erp/internal/core"
)

// listSuppliers handles GET /api/suppliers. Each supplier carries its
// outstanding balance computed from the full invoice and payment history.
func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSuppliers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid supplier id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	supplier, err := h.svc.GetSupplier(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, supplier)
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var input core.SupplierInput
	if !decodeJSON(w, r, &input) {
		return
	}
	supplier, err := h.svc.CreateSupplier(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, supplier)
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid supplier id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var input core.SupplierInput
	if !decodeJSON(w, r, &input) {
		return
	}
	supplier, err := h.svc.UpdateSupplier(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, supplier)
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid supplier id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteSupplier(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// supplierStatement handles GET /api/suppliers/{id}/statement with optional
// from/to query bounds (YYYY-MM-DD, inclusive).
func (h *Handler) supplierStatement(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid supplier id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	from, to := dateRange(r)
	report, err := h.svc.GetSupplierStatement(r.Context(), id, from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}
