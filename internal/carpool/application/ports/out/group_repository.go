package out

import (
	"context"

	"carpool/internal/carpool/domain"
)

// GroupRepository persists carpool groups.
type GroupRepository interface {
	// Create inserts a new group.
	Create(ctx context.Context, group *domain.CarpoolGroup) error

	// FindByID returns the group or domain.ErrGroupNotFound.
	FindByID(ctx context.Context, groupID string) (*domain.CarpoolGroup, error)

	// FindByName returns the oldest group with that name or
	// domain.ErrGroupNotFound. Group names are not unique.
	FindByName(ctx context.Context, name string) (*domain.CarpoolGroup, error)

	// FindByOfficeIDs returns all groups anchored at any of the offices,
	// stable by creation order.
	FindByOfficeIDs(ctx context.Context, officeIDs []string) ([]*domain.CarpoolGroup, error)

	// FindAll returns every group, stable by creation order.
	FindAll(ctx context.Context) ([]*domain.CarpoolGroup, error)

	// Count returns the total number of groups.
	Count(ctx context.Context) (int, error)
}
