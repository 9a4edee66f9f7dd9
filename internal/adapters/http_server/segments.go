package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourops/internal/app"
	"tourops/internal/domain"
)

func (h *Handlers) listSegments(w http.ResponseWriter, r *http.Request) {
	out, err := h.Segments.List(r.Context(), chi.URLParam(r, "routeID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createSegment(w http.ResponseWriter, r *http.Request) {
	var in app.SegmentInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Segments.Create(r.Context(), chi.URLParam(r, "routeID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) updateSegment(w http.ResponseWriter, r *http.Request) {
	var in app.SegmentInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Segments.Update(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteSegment(w http.ResponseWriter, r *http.Request) {
	if err := h.Segments.Delete(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID")); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type segmentOrderUpdate struct {
	ID           string `json:"id"`
	SegmentOrder int    `json:"segmentOrder"`
}

func (h *Handlers) reorderSegments(w http.ResponseWriter, r *http.Request) {
	var in []segmentOrderUpdate
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	updates := make([]domain.OrderUpdate, 0, len(in))
	for _, u := range in {
		updates = append(updates, domain.OrderUpdate{ID: u.ID, Order: u.SegmentOrder})
	}
	if err := h.Segments.Reorder(r.Context(), chi.URLParam(r, "routeID"), updates); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ---- stops ----

func (h *Handlers) listStops(w http.ResponseWriter, r *http.Request) {
	out, err := h.Segments.ListStops(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createStop(w http.ResponseWriter, r *http.Request) {
	var in app.StopInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Segments.CreateStop(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

type stopOrderUpdate struct {
	ID        string `json:"id"`
	StopOrder int    `json:"stopOrder"`
}

func (h *Handlers) reorderStops(w http.ResponseWriter, r *http.Request) {
	var in []stopOrderUpdate
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	updates := make([]domain.OrderUpdate, 0, len(in))
	for _, u := range in {
		updates = append(updates, domain.OrderUpdate{ID: u.ID, Order: u.StopOrder})
	}
	if err := h.Segments.ReorderStops(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"), updates); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) deleteStop(w http.ResponseWriter, r *http.Request) {
	err := h.Segments.DeleteStop(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"), chi.URLParam(r, "stopID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
