package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gigpulse/gigpulse/internal/domain/geo"
	"github.com/gigpulse/gigpulse/internal/domain/model"
)

// fixRequest mirrors POST /v1/events/fixes.
type fixRequest struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (f fixRequest) validate() error {
	if !geo.ValidCoordinates(f.Lat, f.Lng) {
		return errors.New("coordinates out of range")
	}
	return nil
}

// notificationRequest mirrors POST /v1/events/notifications.
type notificationRequest struct {
	SourceApp string `json:"source_app"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

func (n notificationRequest) validate() error {
	if strings.TrimSpace(n.SourceApp) == "" {
		return errors.New("missing source_app")
	}
	return nil
}

func (s *Server) handlePostFix(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_fix"
	var req fixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if req.RecordedAt.IsZero() {
		req.RecordedAt = time.Now()
	}

	fix := model.Fix{Lat: req.Lat, Lng: req.Lng, RecordedAt: req.RecordedAt}
	if ok := s.core.EnqueueFix(r.Context(), fix); !ok {
		writeError(w, http.StatusTooManyRequests, "backpressure", fmt.Errorf("%s: %w", op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}

func (s *Server) handlePostNotification(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_notification"
	var req notificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	n := model.Notification{SourceApp: req.SourceApp, Title: req.Title, Body: req.Body}
	if ok := s.core.EnqueueNotification(r.Context(), n); !ok {
		writeError(w, http.StatusTooManyRequests, "backpressure", fmt.Errorf("%s: %w", op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}
