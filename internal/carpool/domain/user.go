package domain

import "time"

// User is a commuter known to the coordinator. The id is the stable external
// (chat platform) account id; a record is created on first set-home and never
// hard-deleted.
type User struct {
	ID                   string    `json:"id" db:"id"`
	DisplayName          string    `json:"display_name" db:"display_name"`
	HomeAddress          *string   `json:"home_address,omitempty" db:"home_address"`
	HomeLatitude         *float64  `json:"home_latitude,omitempty" db:"home_latitude"`
	HomeLongitude        *float64  `json:"home_longitude,omitempty" db:"home_longitude"`
	NotificationsEnabled bool      `json:"notifications_enabled" db:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// Name returns the best user-facing label for fanout messages.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.ID
}
