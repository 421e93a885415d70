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

// SetScheduleService implements SetScheduleUseCase. Always inserts a new
// schedule row; see the policy note on SetOfficeService.
type SetScheduleService struct {
	officeRepo   out.OfficeRepository
	scheduleRepo out.ScheduleRepository
	log          *logger.Logger
}

func NewSetScheduleService(
	officeRepo out.OfficeRepository,
	scheduleRepo out.ScheduleRepository,
	log *logger.Logger,
) *SetScheduleService {
	return &SetScheduleService{
		officeRepo:   officeRepo,
		scheduleRepo: scheduleRepo,
		log:          log,
	}
}

func (s *SetScheduleService) Execute(ctx context.Context, input in.SetScheduleInput) (*in.SetScheduleOutput, error) {
	office, err := s.officeRepo.FindByName(ctx, input.OfficeName)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateTimeOfDay(input.StartTime); err != nil {
		return nil, err
	}
	if err := domain.ValidateTimeOfDay(input.EndTime); err != nil {
		return nil, err
	}
	days, err := domain.ParseDaysOfWeek(input.DaysOfWeek)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	schedule := &domain.WorkSchedule{
		ID:         uuid.New().String(),
		UserID:     input.UserID,
		OfficeID:   office.ID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		DaysOfWeek: days,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "schedule_set",
		Message: fmt.Sprintf("schedule %s-%s (%s) at %s", schedule.StartTime, schedule.EndTime, schedule.DaysOfWeek, office.Name),
		Additional: map[string]any{
			"user_id":     input.UserID,
			"office_id":   office.ID,
			"schedule_id": schedule.ID,
		},
	})

	return &in.SetScheduleOutput{Schedule: *schedule}, nil
}
