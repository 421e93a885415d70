package in

import "context"

// SendMessageInput — the message command: free text to every group the
// caller belongs to.
type SendMessageInput struct {
	UserID string
	Text   string
}

type SendMessageOutput struct {
	GroupsNotified int `json:"groups_notified"`
}

type SendMessageUseCase interface {
	Execute(ctx context.Context, input SendMessageInput) (*SendMessageOutput, error)
}
