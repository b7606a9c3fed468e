package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gigpulse/gigpulse/internal/domain/mileage"
)

type trackingStartResponse struct {
	Active bool    `json:"active"`
	Miles  float64 `json:"miles"`
}

func (s *Server) handleStartTracking(w http.ResponseWriter, _ *http.Request) {
	miles := s.core.StartTracking()
	writeJSON(w, http.StatusOK, trackingStartResponse{Active: true, Miles: miles})
}

func (s *Server) handleStopTracking(w http.ResponseWriter, _ *http.Request) {
	const op = "api.stop_tracking"
	trip, err := s.core.StopTracking()
	if err != nil {
		if errors.Is(err, mileage.ErrNoActiveSession) {
			writeError(w, http.StatusConflict, "no_active_session", fmt.Errorf("%s: %w", op, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (s *Server) handleGetTracking(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Tracking())
}
