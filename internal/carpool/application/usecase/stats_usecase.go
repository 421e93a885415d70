package usecase

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/shared/logger"
)

// StatsService implements StatsUseCase.
type StatsService struct {
	userRepo   out.UserRepository
	groupRepo  out.GroupRepository
	memberRepo out.MembershipRepository
	log        *logger.Logger
}

func NewStatsService(
	userRepo out.UserRepository,
	groupRepo out.GroupRepository,
	memberRepo out.MembershipRepository,
	log *logger.Logger,
) *StatsService {
	return &StatsService{
		userRepo:   userRepo,
		groupRepo:  groupRepo,
		memberRepo: memberRepo,
		log:        log,
	}
}

func (s *StatsService) Execute(ctx context.Context) (*in.StatsOutput, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	groups, err := s.groupRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count groups: %w", err)
	}
	members, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}

	return &in.StatsOutput{
		TotalUsers:    users,
		TotalCarpools: groups,
		TotalMembers:  members,
	}, nil
}
