package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gigpulse/gigpulse/internal/domain/hotspot"
	"github.com/gigpulse/gigpulse/internal/domain/model"
)

// hotspotRequest mirrors POST /v1/hotspots. ID and busy-state are assigned
// server-side.
type hotspotRequest struct {
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RadiusMeters float64 `json:"radius_meters"`
	Platform     string  `json:"platform"`
}

type busyRequest struct {
	Busy bool `json:"busy"`
}

func (s *Server) handleGetHotspots(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Hotspots())
}

func (s *Server) handlePostHotspot(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_hotspot"
	var req hotspotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	added, err := s.core.AddHotspot(model.Hotspot{
		Name:         req.Name,
		Lat:          req.Lat,
		Lng:          req.Lng,
		RadiusMeters: req.RadiusMeters,
		Platform:     req.Platform,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handlePutHotspotBusy(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_hotspot_busy"
	var req busyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.core.SetHotspotBusy(id, req.Busy); err != nil {
		if errors.Is(err, hotspot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%s: %w", op, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "updated"})
}
