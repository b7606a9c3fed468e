// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gigpulse/gigpulse/internal/adapters/settings"
	"github.com/gigpulse/gigpulse/internal/app"
	"github.com/gigpulse/gigpulse/internal/domain/model"
)

// Core bundles the service operations the handlers depend on. Using an
// interface bundle keeps the handler layer loosely coupled to internal/app.
type Core interface {
	// Ingest pushes events for async processing. Returns false on
	// backpressure.
	EnqueueFix(ctx context.Context, fix model.Fix) bool
	EnqueueNotification(ctx context.Context, n model.Notification) bool

	// Commands mutate state synchronously.
	AddHotspot(h model.Hotspot) (model.Hotspot, error)
	SetHotspotBusy(id string, busy bool) error
	StartTracking() float64
	StopTracking() (model.Trip, error)
	AddEarning(e model.Earning) (model.Earning, error)
	UpdateSettings(ctx context.Context, v settings.Values)

	// Reads return copies of current state.
	Hotspots() []model.Hotspot
	Trips() []model.Trip
	Earnings() []model.Earning
	Snapshot() model.Snapshot
	Tracking() app.TrackingStatus
	Settings() settings.Values
	Stats(ctx context.Context) map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	core Core
}

// NewServer creates a new API server backed by core.
func NewServer(core Core) *Server {
	return &Server{core: core}
}

// Register attaches all business routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.handleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.handleStats, "stats"))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/events/fixes", MetricsMiddleware(s.handlePostFix, "events_fixes"))
		r.Post("/events/notifications", MetricsMiddleware(s.handlePostNotification, "events_notifications"))

		r.Get("/hotspots", MetricsMiddleware(s.handleGetHotspots, "hotspots"))
		r.Post("/hotspots", MetricsMiddleware(s.handlePostHotspot, "hotspots"))
		r.Put("/hotspots/{id}/busy", MetricsMiddleware(s.handlePutHotspotBusy, "hotspot_busy"))

		r.Post("/tracking/start", MetricsMiddleware(s.handleStartTracking, "tracking_start"))
		r.Post("/tracking/stop", MetricsMiddleware(s.handleStopTracking, "tracking_stop"))
		r.Get("/tracking", MetricsMiddleware(s.handleGetTracking, "tracking"))

		r.Get("/trips", MetricsMiddleware(s.handleGetTrips, "trips"))
		r.Get("/earnings", MetricsMiddleware(s.handleGetEarnings, "earnings"))
		r.Post("/earnings", MetricsMiddleware(s.handlePostEarning, "earnings"))
		r.Get("/snapshot", MetricsMiddleware(s.handleGetSnapshot, "snapshot"))

		r.Get("/settings", MetricsMiddleware(s.handleGetSettings, "settings"))
		r.Put("/settings", MetricsMiddleware(s.handlePutSettings, "settings"))
	})
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
