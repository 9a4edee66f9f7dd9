package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourops/internal/app"
	"tourops/internal/domain"
)

func (h *Handlers) listAccommodations(w http.ResponseWriter, r *http.Request) {
	out, err := h.Accommodations.List(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createAccommodation(w http.ResponseWriter, r *http.Request) {
	var in domain.Accommodation
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Accommodations.Create(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) deleteAccommodation(w http.ResponseWriter, r *http.Request) {
	err := h.Accommodations.Delete(r.Context(),
		chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"), chi.URLParam(r, "accommodationID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var in app.RoomInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Accommodations.CreateRoom(r.Context(),
		chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"), chi.URLParam(r, "accommodationID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	var in app.RoomInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Accommodations.UpdateRoom(r.Context(),
		chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"),
		chi.URLParam(r, "accommodationID"), chi.URLParam(r, "roomID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	err := h.Accommodations.DeleteRoom(r.Context(),
		chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"),
		chi.URLParam(r, "accommodationID"), chi.URLParam(r, "roomID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
