package in

import (
	"context"

	"carpool/internal/carpool/domain"
)

// FindCarpoolsInput — the find command.
type FindCarpoolsInput struct {
	UserID string
}

// FindCarpoolsOutput lists candidate groups across the union of the user's
// schedule offices, each with members and remaining capacity.
type FindCarpoolsOutput struct {
	Groups []CandidateGroup `json:"groups"`
}

type CandidateGroup struct {
	Group             domain.GroupWithMembers `json:"group"`
	RemainingCapacity int                     `json:"remaining_capacity"`
}

// FindCarpoolsUseCase is read-only.
type FindCarpoolsUseCase interface {
	Execute(ctx context.Context, input FindCarpoolsInput) (*FindCarpoolsOutput, error)
}
