package domain

import "time"

// CarpoolGroup is a capacity-bounded set of commuters sharing a commute to
// one office. Groups are created by admin action and never deleted by the
// engine.
type CarpoolGroup struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OfficeID  string    `json:"office_id" db:"office_id"`
	MaxSize   int       `json:"max_size" db:"max_size"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// GroupMember is a membership row joined with its user record, composed by
// the engine (never by the store).
type GroupMember struct {
	Membership Membership `json:"membership"`
	User       User       `json:"user"`
}

// GroupWithMembers annotates a group with its office and current members.
type GroupWithMembers struct {
	Group   CarpoolGroup   `json:"group"`
	Office  OfficeLocation `json:"office"`
	Members []GroupMember  `json:"members"`
}

// RemainingCapacity is never negative even if the store briefly over-admits.
func (g *GroupWithMembers) RemainingCapacity() int {
	rem := g.Group.MaxSize - len(g.Members)
	if rem < 0 {
		return 0
	}
	return rem
}
