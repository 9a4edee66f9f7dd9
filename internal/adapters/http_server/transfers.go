package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourops/internal/app"
)

func (h *Handlers) listTransfers(w http.ResponseWriter, r *http.Request) {
	out, err := h.Transfers.List(r.Context(), chi.URLParam(r, "routeID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createTransfer(w http.ResponseWriter, r *http.Request) {
	var in app.TransferInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Transfers.Create(r.Context(), chi.URLParam(r, "routeID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) updateTransfer(w http.ResponseWriter, r *http.Request) {
	var in app.TransferInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Transfers.Update(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "transferID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteTransfer(w http.ResponseWriter, r *http.Request) {
	if err := h.Transfers.Delete(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "transferID")); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) addTransferVehicle(w http.ResponseWriter, r *http.Request) {
	var in app.VehicleInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Transfers.AddVehicle(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "transferID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) removeTransferVehicle(w http.ResponseWriter, r *http.Request) {
	err := h.Transfers.RemoveVehicle(r.Context(),
		chi.URLParam(r, "routeID"), chi.URLParam(r, "transferID"), chi.URLParam(r, "vehicleID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) addTransferParticipant(w http.ResponseWriter, r *http.Request) {
	out, err := h.Transfers.AddRider(r.Context(),
		chi.URLParam(r, "routeID"), chi.URLParam(r, "transferID"), chi.URLParam(r, "participantID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) removeTransferParticipant(w http.ResponseWriter, r *http.Request) {
	err := h.Transfers.RemoveRider(r.Context(),
		chi.URLParam(r, "routeID"), chi.URLParam(r, "transferID"), chi.URLParam(r, "participantID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
