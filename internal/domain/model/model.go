// Package model defines the domain types shared across the service.
package model

import "time"

// Platform labels used by the default routing table. The platform set is
// open: hotspots and earnings accept any non-empty label.
const (
	PlatformDoorDash = "DoorDash"
	PlatformUberEats = "UberEats"
)

// Hotspot is a user-defined geographic zone carrying a busy/calm verdict.
type Hotspot struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RadiusMeters float64 `json:"radius_meters"`
	Platform     string  `json:"platform"`
	Busy         bool    `json:"busy"`
}

// Trip is a closed tracking session.
type Trip struct {
	ID        string    `json:"id"`
	Miles     float64   `json:"miles"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// Earning is one recorded payout.
type Earning struct {
	ID       string    `json:"id"`
	Platform string    `json:"platform"`
	Amount   float64   `json:"amount"`
	At       time.Time `json:"at"`
}

// Fix is a single GPS position sample.
type Fix struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Notification is the text payload captured from a vendor app.
type Notification struct {
	SourceApp string `json:"source_app"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// Verdict is a platform-wide demand signal derived from one notification.
type Verdict struct {
	Platform string `json:"platform"`
	Busy     bool   `json:"busy"`
}

// Snapshot is the derived financial summary. It is recomputed from the full
// collections on every read; nothing here is stored.
type Snapshot struct {
	Gross    float64 `json:"gross"`
	Miles    float64 `json:"miles"`
	FuelCost float64 `json:"fuel_cost"`
	Net      float64 `json:"net"`
}

// EventKind discriminates queued event payloads.
type EventKind int

// Queued event kinds.
const (
	EventFix EventKind = iota + 1
	EventNotification
)

// Event is the envelope flowing through the ingestion queue. Exactly one
// payload field is set, selected by Kind.
type Event struct {
	Kind         EventKind
	Fix          Fix
	Notification Notification
}
