package usecase

import (
	"context"
	"fmt"
	"time"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"

	"github.com/google/uuid"
)

// JoinGroupService implements JoinGroupUseCase. Admission is delegated to
// the store's atomic capacity-checked insert, so concurrent joins on the
// last seat cannot both succeed. The capacity check runs before the
// uniqueness check: joining a full group reports full even to a user who is
// already in it.
type JoinGroupService struct {
	userRepo      out.UserRepository
	groupRepo     out.GroupRepository
	memberRepo    out.MembershipRepository
	groupNotifier GroupNotifier
	log           *logger.Logger
}

func NewJoinGroupService(
	userRepo out.UserRepository,
	groupRepo out.GroupRepository,
	memberRepo out.MembershipRepository,
	groupNotifier GroupNotifier,
	log *logger.Logger,
) *JoinGroupService {
	return &JoinGroupService{
		userRepo:      userRepo,
		groupRepo:     groupRepo,
		memberRepo:    memberRepo,
		groupNotifier: groupNotifier,
		log:           log,
	}
}

func (s *JoinGroupService) Execute(ctx context.Context, input in.JoinGroupInput) (*in.JoinGroupOutput, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindByName(ctx, input.GroupName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	membership := &domain.Membership{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		GroupID:     group.ID,
		IsOrganizer: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.memberRepo.CreateIfCapacity(ctx, membership, group.MaxSize); err != nil {
		return nil, err
	}

	s.log.Info(logger.Entry{
		Action:  "member_joined",
		Message: fmt.Sprintf("%s joined %s", user.Name(), group.Name),
		GroupID: group.ID,
		Additional: map[string]any{
			"user_id":       user.ID,
			"membership_id": membership.ID,
		},
	})

	// Fanout includes the member who just joined.
	s.groupNotifier.NotifyGroup(ctx, group.ID, out.Notification{
		Kind: "member_joined",
		Text: fmt.Sprintf("%s joined carpool group %s", user.Name(), group.Name),
		Payload: map[string]any{
			"user_id":    user.ID,
			"group_name": group.Name,
		},
	})

	return &in.JoinGroupOutput{Membership: *membership, Group: *group}, nil
}
