package in

import (
	"context"

	"carpool/internal/carpool/domain"
)

// JoinGroupInput — the join command.
type JoinGroupInput struct {
	UserID    string
	GroupName string
}

type JoinGroupOutput struct {
	Membership domain.Membership `json:"membership"`
	Group      domain.CarpoolGroup `json:"group"`
}

// JoinGroupUseCase admits the user if the group has capacity and notifies
// existing members.
type JoinGroupUseCase interface {
	Execute(ctx context.Context, input JoinGroupInput) (*JoinGroupOutput, error)
}
