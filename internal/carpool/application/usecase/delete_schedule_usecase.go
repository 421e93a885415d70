package usecase

import (
	"context"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/shared/logger"
)

// DeleteScheduleService implements DeleteScheduleUseCase. Schedules are the
// only entity the engine hard-deletes, and only by their owner.
type DeleteScheduleService struct {
	scheduleRepo out.ScheduleRepository
	log          *logger.Logger
}

func NewDeleteScheduleService(scheduleRepo out.ScheduleRepository, log *logger.Logger) *DeleteScheduleService {
	return &DeleteScheduleService{scheduleRepo: scheduleRepo, log: log}
}

func (s *DeleteScheduleService) Execute(ctx context.Context, input in.DeleteScheduleInput) error {
	if err := s.scheduleRepo.DeleteByIDAndUser(ctx, input.ScheduleID, input.UserID); err != nil {
		return err
	}
	s.log.Info(logger.Entry{
		Action:  "schedule_deleted",
		Message: input.ScheduleID,
		Additional: map[string]any{
			"user_id": input.UserID,
		},
	})
	return nil
}
