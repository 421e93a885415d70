package domain

import "time"

// OfficeLocation is a named work location with geocoded coordinates.
// Immutable once referenced by schedules or groups, except re-geocoding.
type OfficeLocation struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OfficeSummary is the office directory row: per-office usage counts and an
// optional distance from a caller-supplied reference point.
type OfficeSummary struct {
	Office            OfficeLocation `json:"office"`
	TotalUsers        int            `json:"total_users"`
	UsersInCarpools   int            `json:"users_in_carpools"`
	ParticipationRate float64        `json:"participation_rate"` // percent, 0 when no users
	DistanceKm        *float64       `json:"distance_km,omitempty"`
}
