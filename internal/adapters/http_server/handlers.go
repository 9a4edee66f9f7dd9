package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tourops/internal/app"
	"tourops/internal/domain"
)

type Handlers struct {
	Routes         *app.RouteService
	Query          *app.QueryService
	Segments       *app.SegmentService
	Accommodations *app.AccommodationService
	Logistics      *app.LogisticsService
	Participants   *app.ParticipantService
	Transfers      *app.TransferService
	Transactions   *app.TransactionService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/routes", func(r chi.Router) {
		r.Get("/", h.listRoutes)
		r.Post("/", h.createRoute)

		r.Route("/{routeID}", func(r chi.Router) {
			r.Get("/", h.getRoute)
			r.Put("/", h.updateRoute)
			r.Delete("/", h.deleteRoute)
			r.Post("/duplicate", h.duplicateRoute)

			r.Route("/segments", func(r chi.Router) {
				r.Get("/", h.listSegments)
				r.Post("/", h.createSegment)
				r.Put("/reorder", h.reorderSegments)

				r.Route("/{segmentID}", func(r chi.Router) {
					r.Put("/", h.updateSegment)
					r.Delete("/", h.deleteSegment)

					r.Route("/stops", func(r chi.Router) {
						r.Get("/", h.listStops)
						r.Post("/", h.createStop)
						r.Put("/reorder", h.reorderStops)
						r.Delete("/{stopID}", h.deleteStop)
					})

					r.Route("/accommodations", func(r chi.Router) {
						r.Get("/", h.listAccommodations)
						r.Post("/", h.createAccommodation)
						r.Delete("/{accommodationID}", h.deleteAccommodation)

						r.Route("/{accommodationID}/rooms", func(r chi.Router) {
							r.Post("/", h.createRoom)
							r.Put("/{roomID}", h.updateRoom)
							r.Delete("/{roomID}", h.deleteRoom)
						})
					})

					r.Post("/participants/{participantID}", h.addParticipantToSegment)
					r.Delete("/participants/{participantID}", h.removeParticipantFromSegment)
				})
			})

			r.Route("/logistics", func(r chi.Router) {
				r.Get("/", h.listLogistics)
				r.Post("/", h.createLogistics)
				r.Put("/{logisticsID}", h.updateLogistics)
				r.Delete("/{logisticsID}", h.deleteLogistics)
			})

			r.Route("/participants", func(r chi.Router) {
				r.Get("/", h.listParticipants)
				r.Post("/", h.createParticipant)
				r.Put("/{participantID}", h.updateParticipant)
				r.Delete("/{participantID}", h.deleteParticipant)
				r.Put("/{participantID}/segments", h.setParticipantSegments)
			})

			r.Route("/transfers", func(r chi.Router) {
				r.Get("/", h.listTransfers)
				r.Post("/", h.createTransfer)
				r.Put("/{transferID}", h.updateTransfer)
				r.Delete("/{transferID}", h.deleteTransfer)

				r.Post("/{transferID}/vehicles", h.addTransferVehicle)
				r.Delete("/{transferID}/vehicles/{vehicleID}", h.removeTransferVehicle)
				r.Post("/{transferID}/participants/{participantID}", h.addTransferParticipant)
				r.Delete("/{transferID}/participants/{participantID}", h.removeTransferParticipant)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.listTransactions)
				r.Post("/", h.createTransaction)
			})
		})
	})
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- routes ----

func (h *Handlers) listRoutes(w http.ResponseWriter, r *http.Request) {
	out, err := h.Routes.List(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createRoute(w http.ResponseWriter, r *http.Request) {
	var in domain.Route
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	out, err := h.Routes.Create(r.Context(), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) getRoute(w http.ResponseWriter, r *http.Request) {
	agg, err := h.Query.GetRoute(r.Context(), chi.URLParam(r, "routeID"))
	if err != nil {
		respondErr(w, err)
		return
	}

	etag, body := calcETagAndBody(agg)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getRoute body")
	}
}

func (h *Handlers) updateRoute(w http.ResponseWriter, r *http.Request) {
	var in domain.Route
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, err)
		return
	}
	in.ID = chi.URLParam(r, "routeID")
	out, err := h.Routes.Update(r.Context(), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteRoute(w http.ResponseWriter, r *http.Request) {
	if err := h.Routes.Delete(r.Context(), chi.URLParam(r, "routeID")); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) duplicateRoute(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	// an empty body is fine; the copy then takes the default name
	_ = json.NewDecoder(r.Body).Decode(&in)
	out, err := h.Routes.Duplicate(r.Context(), chi.URLParam(r, "routeID"), in.Name)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}
