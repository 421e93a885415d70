package in

import (
	"context"

	"carpool/internal/carpool/domain"
)

// CreateGroupInput — the admin create action. Authorization (the pool-admin
// role / dashboard admin) is enforced by the caller, not here.
type CreateGroupInput struct {
	Name       string
	OfficeName string
	MaxSize    int
}

type CreateGroupOutput struct {
	Group domain.CarpoolGroup `json:"group"`
}

type CreateGroupUseCase interface {
	Execute(ctx context.Context, input CreateGroupInput) (*CreateGroupOutput, error)
}
