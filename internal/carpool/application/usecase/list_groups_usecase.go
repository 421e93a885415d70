package usecase

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"
)

// ListGroupsService implements ListGroupsUseCase.
type ListGroupsService struct {
	groupRepo  out.GroupRepository
	officeRepo out.OfficeRepository
	memberRepo out.MembershipRepository
	userRepo   out.UserRepository
	log        *logger.Logger
}

func NewListGroupsService(
	groupRepo out.GroupRepository,
	officeRepo out.OfficeRepository,
	memberRepo out.MembershipRepository,
	userRepo out.UserRepository,
	log *logger.Logger,
) *ListGroupsService {
	return &ListGroupsService{
		groupRepo:  groupRepo,
		officeRepo: officeRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		log:        log,
	}
}

func (s *ListGroupsService) Execute(ctx context.Context) (*in.ListGroupsOutput, error) {
	groups, err := s.groupRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	views := make([]domain.GroupWithMembers, 0, len(groups))
	for _, g := range groups {
		view, err := composeGroupView(ctx, g, s.officeRepo, s.memberRepo, s.userRepo)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	return &in.ListGroupsOutput{Groups: views}, nil
}
