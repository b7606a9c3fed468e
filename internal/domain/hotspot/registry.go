// Package hotspot maintains the in-memory collection of geographic zones
// and their busy/calm verdicts.
package hotspot

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gigpulse/gigpulse/internal/domain/geo"
	"github.com/gigpulse/gigpulse/internal/domain/model"
)

// DefaultRadiusMeters is applied when a submission omits the radius.
const DefaultRadiusMeters = 300

// Registry holds hotspots in insertion order. Collections stay small (tens
// of entries), so linear lookup is deliberate. Callers must serialize
// access; the single-writer owner in internal/app does so.
type Registry struct {
	hotspots []model.Hotspot
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add validates and appends a hotspot under a fresh identity, returning the
// stored copy. The caller's ID and Busy fields are ignored: identity is
// assigned here and every hotspot starts calm.
func (r *Registry) Add(h model.Hotspot) (model.Hotspot, error) {
	if strings.TrimSpace(h.Name) == "" {
		return model.Hotspot{}, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(h.Platform) == "" {
		return model.Hotspot{}, fmt.Errorf("%w: platform must not be empty", ErrInvalidInput)
	}
	if !geo.ValidCoordinates(h.Lat, h.Lng) {
		return model.Hotspot{}, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	if h.RadiusMeters == 0 {
		h.RadiusMeters = DefaultRadiusMeters
	}
	if h.RadiusMeters < 0 {
		return model.Hotspot{}, fmt.Errorf("%w: radius must be positive", ErrInvalidInput)
	}

	h.ID = uuid.NewString()
	h.Busy = false
	r.hotspots = append(r.hotspots, h)
	return h, nil
}

// SetBusy overwrites a single hotspot's busy-state. Idempotent; returns
// ErrNotFound for an unknown id.
func (r *Registry) SetBusy(id string, busy bool) error {
	for i := range r.hotspots {
		if r.hotspots[i].ID == id {
			r.hotspots[i].Busy = busy
			return nil
		}
	}
	return ErrNotFound
}

// ApplyPlatformVerdict overwrites the busy-state of every hotspot on the
// verdict's platform. Notifications carry no zone identity, so the signal
// is platform-wide. Returns the number of hotspots touched.
func (r *Registry) ApplyPlatformVerdict(v model.Verdict) int {
	touched := 0
	for i := range r.hotspots {
		if strings.EqualFold(r.hotspots[i].Platform, v.Platform) {
			r.hotspots[i].Busy = v.Busy
			touched++
		}
	}
	return touched
}

// List returns a copy of the hotspots in insertion order.
func (r *Registry) List() []model.Hotspot {
	out := make([]model.Hotspot, len(r.hotspots))
	copy(out, r.hotspots)
	return out
}

// Count returns the number of registered hotspots.
func (r *Registry) Count() int {
	return len(r.hotspots)
}
