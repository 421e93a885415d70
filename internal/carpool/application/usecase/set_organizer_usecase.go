package usecase

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/shared/logger"
)

// SetOrganizerService implements SetOrganizerUseCase. Self-service and
// idempotent: flagging an already-organizer membership succeeds and still
// notifies the group.
type SetOrganizerService struct {
	userRepo      out.UserRepository
	groupRepo     out.GroupRepository
	memberRepo    out.MembershipRepository
	groupNotifier GroupNotifier
	log           *logger.Logger
}

func NewSetOrganizerService(
	userRepo out.UserRepository,
	groupRepo out.GroupRepository,
	memberRepo out.MembershipRepository,
	groupNotifier GroupNotifier,
	log *logger.Logger,
) *SetOrganizerService {
	return &SetOrganizerService{
		userRepo:      userRepo,
		groupRepo:     groupRepo,
		memberRepo:    memberRepo,
		groupNotifier: groupNotifier,
		log:           log,
	}
}

func (s *SetOrganizerService) Execute(ctx context.Context, input in.SetOrganizerInput) (*in.SetOrganizerOutput, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindByName(ctx, input.GroupName)
	if err != nil {
		return nil, err
	}

	membership, err := s.memberRepo.FindByUserAndGroup(ctx, user.ID, group.ID)
	if err != nil {
		return nil, err
	}

	alreadyOrganizer := membership.IsOrganizer
	if !alreadyOrganizer {
		if err := s.memberRepo.SetOrganizer(ctx, membership.ID); err != nil {
			return nil, fmt.Errorf("set organizer: %w", err)
		}
		membership.IsOrganizer = true
	}

	s.log.Info(logger.Entry{
		Action:  "organizer_set",
		Message: fmt.Sprintf("%s is organizer of %s", user.Name(), group.Name),
		GroupID: group.ID,
		Additional: map[string]any{
			"user_id":           user.ID,
			"already_organizer": alreadyOrganizer,
		},
	})

	s.groupNotifier.NotifyGroup(ctx, group.ID, out.Notification{
		Kind: "organizer_set",
		Text: fmt.Sprintf("%s is now an organizer of %s", user.Name(), group.Name),
		Payload: map[string]any{
			"user_id":    user.ID,
			"group_name": group.Name,
		},
	})

	return &in.SetOrganizerOutput{Membership: *membership}, nil
}
