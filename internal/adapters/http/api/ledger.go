package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gigpulse/gigpulse/internal/domain/ledger"
	"github.com/gigpulse/gigpulse/internal/domain/model"
)

// earningRequest mirrors POST /v1/earnings. ID and timestamp are assigned
// server-side when omitted.
type earningRequest struct {
	Platform string    `json:"platform"`
	Amount   float64   `json:"amount"`
	At       time.Time `json:"at"`
}

func (s *Server) handleGetTrips(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Trips())
}

func (s *Server) handleGetEarnings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Earnings())
}

func (s *Server) handlePostEarning(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_earning"
	var req earningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	recorded, err := s.core.AddEarning(model.Earning{Platform: req.Platform, Amount: req.Amount, At: req.At})
	if err != nil {
		if errors.Is(err, ledger.ErrNonPositiveAmount) {
			writeError(w, http.StatusBadRequest, "non_positive_amount", fmt.Errorf("%s: %w", op, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusCreated, recorded)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Snapshot())
}
