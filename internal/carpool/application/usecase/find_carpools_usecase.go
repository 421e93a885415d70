package usecase

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"
)

// FindCarpoolsService implements FindCarpoolsUseCase: candidate groups
// across the union of the caller's schedule offices.
type FindCarpoolsService struct {
	userRepo     out.UserRepository
	scheduleRepo out.ScheduleRepository
	groupRepo    out.GroupRepository
	officeRepo   out.OfficeRepository
	memberRepo   out.MembershipRepository
	log          *logger.Logger
}

func NewFindCarpoolsService(
	userRepo out.UserRepository,
	scheduleRepo out.ScheduleRepository,
	groupRepo out.GroupRepository,
	officeRepo out.OfficeRepository,
	memberRepo out.MembershipRepository,
	log *logger.Logger,
) *FindCarpoolsService {
	return &FindCarpoolsService{
		userRepo:     userRepo,
		scheduleRepo: scheduleRepo,
		groupRepo:    groupRepo,
		officeRepo:   officeRepo,
		memberRepo:   memberRepo,
		log:          log,
	}
}

func (s *FindCarpoolsService) Execute(ctx context.Context, input in.FindCarpoolsInput) (*in.FindCarpoolsOutput, error) {
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("find schedules: %w", err)
	}
	if len(schedules) == 0 {
		return nil, domain.ErrNoSchedule
	}

	// Distinct office ids in schedule creation order keeps the result
	// ordering deterministic across repeat calls.
	seen := make(map[string]struct{}, len(schedules))
	officeIDs := make([]string, 0, len(schedules))
	for _, sched := range schedules {
		if _, ok := seen[sched.OfficeID]; ok {
			continue
		}
		seen[sched.OfficeID] = struct{}{}
		officeIDs = append(officeIDs, sched.OfficeID)
	}

	groups, err := s.groupRepo.FindByOfficeIDs(ctx, officeIDs)
	if err != nil {
		return nil, fmt.Errorf("find groups: %w", err)
	}

	candidates := make([]in.CandidateGroup, 0, len(groups))
	for _, g := range groups {
		view, err := composeGroupView(ctx, g, s.officeRepo, s.memberRepo, s.userRepo)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, in.CandidateGroup{
			Group:             *view,
			RemainingCapacity: view.RemainingCapacity(),
		})
	}

	s.log.Debug(logger.Entry{
		Action:  "carpools_found",
		Message: fmt.Sprintf("%d candidate groups across %d offices", len(candidates), len(officeIDs)),
		Additional: map[string]any{
			"user_id": input.UserID,
		},
	})

	return &in.FindCarpoolsOutput{Groups: candidates}, nil
}
