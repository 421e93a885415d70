package in

import (
	"context"

	"carpool/internal/carpool/domain"
)

// ListGroupsOutput — every group with office and members (admin list action
// and the dashboard groups page).
type ListGroupsOutput struct {
	Groups []domain.GroupWithMembers `json:"groups"`
}

type ListGroupsUseCase interface {
	Execute(ctx context.Context) (*ListGroupsOutput, error)
}
