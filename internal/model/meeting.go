package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultModality is shown for meetings whose sheet has no modality column or a blank cell.
const DefaultModality = "Presencial"

// OnlineModality marks meetings that are exempt from distance ranking.
const OnlineModality = "Online"

type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// MeetingRecord is one normalized row of the meetings sheet.
type MeetingRecord struct {
	Row          int          `json:"row"`
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	LeaderNames  string       `json:"leader_names"`
	PhoneRaw     string       `json:"phone_raw"`
	DayOfWeek    string       `json:"day_of_week"`
	StartTime    string       `json:"start_time"`
	AudienceType string       `json:"audience_type,omitempty"`
	Modality     string       `json:"modality"`
	Neighborhood string       `json:"neighborhood,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
}

func (m MeetingRecord) IsOnline() bool {
	return strings.EqualFold(strings.TrimSpace(m.Modality), OnlineModality)
}

// ResolvedLocation is a successful geocoding answer.
type ResolvedLocation struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	CanonicalAddress string  `json:"canonical_address,omitempty"`
}

func (l ResolvedLocation) Coordinates() *Coordinates {
	return &Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

// LoadStats counts what happened to the source rows during one load cycle.
type LoadStats struct {
	Rows           int `json:"rows"`
	MissingName    int `json:"missing_name"`
	MissingAddress int `json:"missing_address"`
	GeocodeFailed  int `json:"geocode_failed"`
	Usable         int `json:"usable"`
}

// Snapshot is the immutable set of usable meetings produced by one load cycle.
type Snapshot struct {
	ID       uuid.UUID       `json:"id"`
	Meetings []MeetingRecord `json:"meetings"`
	Schema   Schema          `json:"-"`
	LoadedAt time.Time       `json:"loaded_at"`
	Stats    LoadStats       `json:"stats"`
	Err      error           `json:"-"`
}

// Available reports whether the snapshot can serve searches.
func (s Snapshot) Available() bool {
	return s.Err == nil && len(s.Meetings) > 0
}
