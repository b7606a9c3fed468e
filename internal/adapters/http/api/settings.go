package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gigpulse/gigpulse/internal/adapters/settings"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Settings())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_settings"
	var req settings.Values
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if req.MPG < 0 || req.FuelPrice < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: values must not be negative", op, ErrBadRequest))
		return
	}

	s.core.UpdateSettings(r.Context(), req)
	writeJSON(w, http.StatusOK, req)
}
