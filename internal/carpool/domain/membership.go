package domain

import "time"

// Membership is the join row between a user and a carpool group, unique per
// (user, group) pair. Multiple organizers per group are allowed.
type Membership struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	GroupID     string    `json:"carpool_group_id" db:"carpool_group_id"`
	IsOrganizer bool      `json:"is_organizer" db:"is_organizer"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
