package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourops/internal/domain"
)

func (h *Handlers) listLogistics(w http.ResponseWriter, r *http.Request) {
	out, err := h.Logistics.List(r.Context(), chi.URLParam(r, "routeID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createLogistics(w http.ResponseWriter, r *http.Request) {
	var in domain.Logistics
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Logistics.Create(r.Context(), chi.URLParam(r, "routeID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) updateLogistics(w http.ResponseWriter, r *http.Request) {
	var in domain.Logistics
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Logistics.Update(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "logisticsID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteLogistics(w http.ResponseWriter, r *http.Request) {
	if err := h.Logistics.Delete(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "logisticsID")); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
