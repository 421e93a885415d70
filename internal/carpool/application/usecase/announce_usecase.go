package usecase

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/shared/logger"
)

// AnnounceService implements AnnounceUseCase: admin broadcast to every
// notification-enabled user, member or not. Per-user delivery failures are
// logged and skipped.
type AnnounceService struct {
	userRepo out.UserRepository
	notifier out.Notifier
	activity out.ActivityBroadcaster
	log      *logger.Logger
}

func NewAnnounceService(
	userRepo out.UserRepository,
	notifier out.Notifier,
	activity out.ActivityBroadcaster,
	log *logger.Logger,
) *AnnounceService {
	return &AnnounceService{
		userRepo: userRepo,
		notifier: notifier,
		activity: activity,
		log:      log,
	}
}

func (s *AnnounceService) Execute(ctx context.Context, input in.AnnounceInput) (*in.AnnounceOutput, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	sent := 0
	for _, u := range users {
		if !u.NotificationsEnabled {
			continue
		}
		if err := s.notifier.Send(ctx, u.ID, out.Notification{
			Kind: "announcement",
			Text: input.Text,
		}); err != nil {
			s.log.Error(logger.Entry{
				Action:  "announce_send_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
				Additional: map[string]any{
					"user_id": u.ID,
				},
			})
			continue
		}
		sent++
	}

	s.log.Info(logger.Entry{
		Action:  "announcement_sent",
		Message: fmt.Sprintf("announcement delivered to %d of %d users", sent, len(users)),
	})

	if err := s.activity.Broadcast(ctx, out.ActivityEvent{
		Type:    "announcement",
		Message: input.Text,
	}); err != nil {
		s.log.Debug(logger.Entry{Action: "activity_broadcast_failed", Message: err.Error()})
	}

	return &in.AnnounceOutput{UsersNotified: sent}, nil
}
