package model

import "github.com/google/uuid"

// UserQuery is one search submission.
type UserQuery struct {
	DisplayName   string   `json:"display_name" validate:"notblank"`
	ContactNumber string   `json:"contact_number" validate:"notblank"`
	Address       string   `json:"address" validate:"notblank"`
	AudienceTypes []string `json:"audience_types,omitempty"`
	Days          []string `json:"days,omitempty"`
	Modalities    []string `json:"modalities,omitempty"`
}

func (q UserQuery) Facets() Facets {
	return Facets{
		AudienceTypes: q.AudienceTypes,
		Days:          q.Days,
		Modalities:    q.Modalities,
	}
}

// Facets holds the selected values per categorical filter. An empty slice selects everything.
type Facets struct {
	AudienceTypes []string `json:"audience_types"`
	Days          []string `json:"days"`
	Modalities    []string `json:"modalities"`
}

// RankedMeeting is a meeting annotated for one request. DistanceKm is nil for online meetings.
type RankedMeeting struct {
	Meeting        MeetingRecord `json:"meeting"`
	DistanceKm     *float64      `json:"distance_km,omitempty"`
	DistanceLabel  string        `json:"distance_label,omitempty"`
	ContactLink    *string       `json:"contact_link,omitempty"`
	DirectionsLink string        `json:"directions_link,omitempty"`
}

type SearchStatus string

const (
	StatusSuccess          SearchStatus = "success"
	StatusDataUnavailable  SearchStatus = "data-unavailable"
	StatusAddressNotFound  SearchStatus = "address-not-found"
	StatusValidationFailed SearchStatus = "validation-failed"
)

type SearchResult struct {
	Status       SearchStatus      `json:"status"`
	SnapshotID   uuid.UUID         `json:"snapshot_id"`
	UserLocation *ResolvedLocation `json:"user_location,omitempty"`
	Best         []RankedMeeting   `json:"best"`
	More         []RankedMeeting   `json:"more"`
	Online       []RankedMeeting   `json:"online"`
}
