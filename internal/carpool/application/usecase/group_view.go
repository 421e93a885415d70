package usecase

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
)

// composeGroupView joins a group with its office and member users. The
// stores return flat rows only; all composition happens here.
func composeGroupView(
	ctx context.Context,
	group *domain.CarpoolGroup,
	officeRepo out.OfficeRepository,
	memberRepo out.MembershipRepository,
	userRepo out.UserRepository,
) (*domain.GroupWithMembers, error) {
	office, err := officeRepo.FindByID(ctx, group.OfficeID)
	if err != nil {
		return nil, fmt.Errorf("resolve office %s: %w", group.OfficeID, err)
	}

	memberships, err := memberRepo.FindByGroupID(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve members of %s: %w", group.ID, err)
	}

	members := make([]domain.GroupMember, 0, len(memberships))
	for _, m := range memberships {
		user, err := userRepo.FindByID(ctx, m.UserID)
		if err != nil {
			return nil, fmt.Errorf("resolve member %s: %w", m.UserID, err)
		}
		members = append(members, domain.GroupMember{Membership: *m, User: *user})
	}

	return &domain.GroupWithMembers{
		Group:   *group,
		Office:  *office,
		Members: members,
	}, nil
}
