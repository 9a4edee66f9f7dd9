package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourops/internal/domain"
)

func (h *Handlers) listTransactions(w http.ResponseWriter, r *http.Request) {
	out, err := h.Transactions.List(r.Context(), chi.URLParam(r, "routeID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createTransaction(w http.ResponseWriter, r *http.Request) {
	var in domain.Transaction
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Transactions.Create(r.Context(), chi.URLParam(r, "routeID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}
