package out

import "context"

// ActivityEvent is a dashboard feed item emitted after accepted mutations.
type ActivityEvent struct {
	Type    string         `json:"type"` // user_registered | office_added | member_joined | ...
	GroupID string         `json:"group_id,omitempty"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// ActivityBroadcaster pushes events to connected dashboard clients,
// best-effort.
type ActivityBroadcaster interface {
	Broadcast(ctx context.Context, event ActivityEvent) error
}
