package usecase

import (
	"context"
	"fmt"
	"time"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/shared/logger"
)

// SetNotificationsService implements SetNotificationsUseCase.
type SetNotificationsService struct {
	userRepo out.UserRepository
	log      *logger.Logger
}

func NewSetNotificationsService(userRepo out.UserRepository, log *logger.Logger) *SetNotificationsService {
	return &SetNotificationsService{userRepo: userRepo, log: log}
}

func (s *SetNotificationsService) Execute(ctx context.Context, input in.SetNotificationsInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	user.NotificationsEnabled = input.Enabled
	user.UpdatedAt = time.Now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "notifications_set",
		Message: fmt.Sprintf("notifications enabled=%t", input.Enabled),
		Additional: map[string]any{
			"user_id": user.ID,
		},
	})
	return nil
}
