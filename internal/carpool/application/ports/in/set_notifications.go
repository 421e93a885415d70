package in

import "context"

// SetNotificationsInput — the notify command: per-user opt in/out of group
// fanout.
type SetNotificationsInput struct {
	UserID  string
	Enabled bool
}

type SetNotificationsUseCase interface {
	Execute(ctx context.Context, input SetNotificationsInput) error
}
