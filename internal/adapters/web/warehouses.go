package web

import (
	"net/http"

	"github.com/AhmedGad3/construction-erp/internal/core"
)

// listWarehouses handles GET /api/warehouses. Stock levels are folded from
// the movement history on every call.
func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.svc.ListWarehouses(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, warehouses)
}

func (h *Handler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	var input core.WarehouseInput
	if !decodeJSON(w, r, &input) {
		return
	}
	warehouse, err := h.svc.CreateWarehouse(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, warehouse)
}

func (h *Handler) updateWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid warehouse id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var input core.WarehouseInput
	if !decodeJSON(w, r, &input) {
		return
	}
	warehouse, err := h.svc.UpdateWarehouse(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, warehouse)
}

func (h *Handler) deleteWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid warehouse id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteWarehouse(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listStockMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := h.svc.ListStockMovements(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, movements)
}

func (h *Handler) createStockMovement(w http.ResponseWriter, r *http.Request) {
	var input core.StockMovementInput
	if !decodeJSON(w, r, &input) {
		return
	}
	movement, err := h.svc.RecordStockMovement(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, movement)
}

func (h *Handler) updateStockMovement(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid stock movement id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var input core.StockMovementInput
	if !decodeJSON(w, r, &input) {
		return
	}
	movement, err := h.svc.UpdateStockMovement(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, movement)
}

func (h *Handler) deleteStockMovement(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid stock movement id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteStockMovement(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listSupplies handles GET /api/supplies, the roll-up of distinct line
// items across all invoices with quantity and spend totals.
func (h *Handler) listSupplies(w http.ResponseWriter, r *http.Request) {
	supplies, err := h.svc.ListSupplies(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, supplies)
}
