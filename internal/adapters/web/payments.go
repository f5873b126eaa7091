package web

import (
	"net/http"

	"github.com/AhmedGad3/construction-erp/internal/core"
)

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListPayments(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid payment id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	payment, err := h.svc.GetPayment(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, payment)
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var input core.PaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}
	payment, err := h.svc.CreatePayment(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, payment)
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid payment id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var input core.PaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}
	payment, err := h.svc.UpdatePayment(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, payment)
}

func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid payment id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeletePayment(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
