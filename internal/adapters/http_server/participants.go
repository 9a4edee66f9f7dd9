package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourops/internal/domain"
)

func (h *Handlers) listParticipants(w http.ResponseWriter, r *http.Request) {
	out, err := h.Participants.List(r.Context(), chi.URLParam(r, "routeID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createParticipant(w http.ResponseWriter, r *http.Request) {
	var in domain.Participant
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Participants.Create(r.Context(), chi.URLParam(r, "routeID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) updateParticipant(w http.ResponseWriter, r *http.Request) {
	var in domain.Participant
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Participants.Update(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "participantID"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteParticipant(w http.ResponseWriter, r *http.Request) {
	if err := h.Participants.Delete(r.Context(), chi.URLParam(r, "routeID"), chi.URLParam(r, "participantID")); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) setParticipantSegments(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SegmentIDs []string `json:"segmentIds"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	err := h.Participants.SetSegments(r.Context(),
		chi.URLParam(r, "routeID"), chi.URLParam(r, "participantID"), in.SegmentIDs)
	if err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) addParticipantToSegment(w http.ResponseWriter, r *http.Request) {
	err := h.Participants.AddToSegment(r.Context(),
		chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"), chi.URLParam(r, "participantID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) removeParticipantFromSegment(w http.ResponseWriter, r *http.Request) {
	err := h.Participants.RemoveFromSegment(r.Context(),
		chi.URLParam(r, "routeID"), chi.URLParam(r, "segmentID"), chi.URLParam(r, "participantID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
