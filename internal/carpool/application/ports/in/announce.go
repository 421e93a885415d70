package in

import "context"

// AnnounceInput — the admin announce action: broadcast to every
// notification-enabled user, members or not.
type AnnounceInput struct {
	Text string
}

type AnnounceOutput struct {
	UsersNotified int `json:"users_notified"`
}

type AnnounceUseCase interface {
	Execute(ctx context.Context, input AnnounceInput) (*AnnounceOutput, error)
}
