package in

import (
	"context"

	"carpool/internal/carpool/domain"
)

// SetOrganizerInput — the set-organizer command.
type SetOrganizerInput struct {
	UserID    string
	GroupName string
}

type SetOrganizerOutput struct {
	Membership domain.Membership `json:"membership"`
}

// SetOrganizerUseCase flags an existing membership as organizer. Idempotent.
type SetOrganizerUseCase interface {
	Execute(ctx context.Context, input SetOrganizerInput) (*SetOrganizerOutput, error)
}
