package out

import "context"

// Notification is one message addressed to one member. Payload carries
// optional structured data for rich rendering by the chat gateway.
type Notification struct {
	Kind    string         `json:"kind"` // member_joined | organizer_set | absence | message | announcement | reply
	GroupID string         `json:"group_id,omitempty"`
	Text    string         `json:"text"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Notifier delivers one message to one user through the chat gateway.
// Delivery is best-effort: callers log and drop failures, they never
// propagate them.
type Notifier interface {
	Send(ctx context.Context, userExternalID string, n Notification) error
}
