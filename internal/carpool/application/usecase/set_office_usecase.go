package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"

	"github.com/google/uuid"
)

// SetOfficeService implements SetOfficeUseCase.
//
// Policy note: set-office upserts the user's single schedule row (creating
// it with the default 09:00-17:00 Mon-Fri window), while set-schedule always
// inserts a new row. Both policies are intentional: set-office is the
// repeat-safe "I moved desks" command, set-schedule records an additional
// commute pattern.
type SetOfficeService struct {
	userRepo     out.UserRepository
	officeRepo   out.OfficeRepository
	scheduleRepo out.ScheduleRepository
	log          *logger.Logger
}

func NewSetOfficeService(
	userRepo out.UserRepository,
	officeRepo out.OfficeRepository,
	scheduleRepo out.ScheduleRepository,
	log *logger.Logger,
) *SetOfficeService {
	return &SetOfficeService{
		userRepo:     userRepo,
		officeRepo:   officeRepo,
		scheduleRepo: scheduleRepo,
		log:          log,
	}
}

func (s *SetOfficeService) Execute(ctx context.Context, input in.SetOfficeInput) (*in.SetOfficeOutput, error) {
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	office, err := s.officeRepo.FindByName(ctx, input.OfficeName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	schedule, err := s.scheduleRepo.FindOneByUserID(ctx, input.UserID)
	switch {
	case errors.Is(err, domain.ErrScheduleNotFound):
		schedule = &domain.WorkSchedule{
			ID:         uuid.New().String(),
			UserID:     input.UserID,
			OfficeID:   office.ID,
			StartTime:  domain.DefaultStartTime,
			EndTime:    domain.DefaultEndTime,
			DaysOfWeek: domain.DefaultDaysOfWeek,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
			return nil, fmt.Errorf("create schedule: %w", err)
		}
		s.log.Info(logger.Entry{
			Action:  "office_set",
			Message: fmt.Sprintf("default schedule created at %s", office.Name),
			Additional: map[string]any{
				"user_id":   input.UserID,
				"office_id": office.ID,
			},
		})
		return &in.SetOfficeOutput{Schedule: *schedule, Created: true}, nil
	case err != nil:
		return nil, fmt.Errorf("find schedule: %w", err)
	}

	if schedule.OfficeID != office.ID {
		schedule.OfficeID = office.ID
		schedule.UpdatedAt = now
		if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
			return nil, fmt.Errorf("update schedule: %w", err)
		}
	}

	s.log.Info(logger.Entry{
		Action:  "office_set",
		Message: fmt.Sprintf("schedule now points at %s", office.Name),
		Additional: map[string]any{
			"user_id":   input.UserID,
			"office_id": office.ID,
		},
	})

	return &in.SetOfficeOutput{Schedule: *schedule, Created: false}, nil
}
