package out

import (
	"context"

	"carpool/internal/carpool/domain"
)

// MembershipRepository persists the user<->group join rows.
type MembershipRepository interface {
	// CreateIfCapacity inserts the membership only if the group currently has
	// fewer than maxSize members. The capacity check and the insert MUST be
	// one atomic operation against the store: two concurrent joins on a group
	// with one seat left must not both succeed. Returns domain.ErrGroupFull
	// when the group is at capacity and domain.ErrAlreadyMember when the
	// (user, group) row already exists.
	CreateIfCapacity(ctx context.Context, membership *domain.Membership, maxSize int) error

	// FindByUserAndGroup returns the membership or domain.ErrNotAMember.
	FindByUserAndGroup(ctx context.Context, userID, groupID string) (*domain.Membership, error)

	// FindByGroupID returns all memberships of a group, stable by creation
	// order.
	FindByGroupID(ctx context.Context, groupID string) ([]*domain.Membership, error)

	// FindByUserID returns all memberships held by a user.
	FindByUserID(ctx context.Context, userID string) ([]*domain.Membership, error)

	// SetOrganizer sets is_organizer=true on an existing membership.
	SetOrganizer(ctx context.Context, membershipID string) error

	// Count returns the total number of membership rows.
	Count(ctx context.Context) (int, error)
}
