package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tripsplit/internal/core"
)

type tripRequest struct {
	Title       string `json:"title"`
	Destination string `json:"destination"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

type tripResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Destination string `json:"destination"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
}

type participantRequest struct {
	Name string `json:"name"`
}

type participantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toTripResponse(t core.Trip) tripResponse {
	resp := tripResponse{ID: t.ID, Title: t.Title, Destination: t.Destination}
	if !t.Start.IsZero() {
		resp.Start = t.Start.Format("2006-01-02")
	}
	if !t.End.IsZero() {
		resp.End = t.End.Format("2006-01-02")
	}
	return resp
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	start, err := parseOptionalDate(req.Start)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	end, err := parseOptionalDate(req.End)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	trip, err := s.svc.CreateTrip(r.Context(), req.Title, req.Destination, start, end)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTripResponse(trip))
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.svc.ListTrips(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.svc.GetTrip(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

func (s *Server) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	p, err := s.svc.AddParticipant(r.Context(), chi.URLParam(r, "tripID"), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, participantResponse{ID: p.ID, Name: p.Name})
}

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := s.svc.ListParticipants(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]participantResponse, 0, len(participants))
	for _, p := range participants {
		out = append(out, participantResponse{ID: p.ID, Name: p.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	err := s.svc.RemoveParticipant(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "participantID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
