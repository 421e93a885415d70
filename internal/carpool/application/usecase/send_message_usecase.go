package usecase

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"
)

// SendMessageService implements SendMessageUseCase: free text relayed to
// every group the caller belongs to.
type SendMessageService struct {
	userRepo      out.UserRepository
	memberRepo    out.MembershipRepository
	groupNotifier GroupNotifier
	log           *logger.Logger
}

func NewSendMessageService(
	userRepo out.UserRepository,
	memberRepo out.MembershipRepository,
	groupNotifier GroupNotifier,
	log *logger.Logger,
) *SendMessageService {
	return &SendMessageService{
		userRepo:      userRepo,
		memberRepo:    memberRepo,
		groupNotifier: groupNotifier,
		log:           log,
	}
}

func (s *SendMessageService) Execute(ctx context.Context, input in.SendMessageInput) (*in.SendMessageOutput, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.memberRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("find memberships: %w", err)
	}
	if len(memberships) == 0 {
		return nil, domain.ErrNotInAnyGroup
	}

	for _, m := range memberships {
		s.groupNotifier.NotifyGroup(ctx, m.GroupID, out.Notification{
			Kind: "message",
			Text: fmt.Sprintf("%s: %s", user.Name(), input.Text),
			Payload: map[string]any{
				"user_id": user.ID,
			},
		})
	}

	s.log.Info(logger.Entry{
		Action:  "message_relayed",
		Message: fmt.Sprintf("%s messaged %d groups", user.Name(), len(memberships)),
		Additional: map[string]any{
			"user_id": user.ID,
		},
	})

	return &in.SendMessageOutput{GroupsNotified: len(memberships)}, nil
}
