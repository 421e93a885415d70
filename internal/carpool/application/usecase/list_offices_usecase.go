package usecase

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"
)

// ListOfficesService implements ListOfficesUseCase: the office directory
// with per-office usage counts and, when a reference address geocodes, a
// distance annotation.
type ListOfficesService struct {
	officeRepo   out.OfficeRepository
	scheduleRepo out.ScheduleRepository
	groupRepo    out.GroupRepository
	memberRepo   out.MembershipRepository
	geocoder     out.Geocoder
	log          *logger.Logger
}

func NewListOfficesService(
	officeRepo out.OfficeRepository,
	scheduleRepo out.ScheduleRepository,
	groupRepo out.GroupRepository,
	memberRepo out.MembershipRepository,
	geocoder out.Geocoder,
	log *logger.Logger,
) *ListOfficesService {
	return &ListOfficesService{
		officeRepo:   officeRepo,
		scheduleRepo: scheduleRepo,
		groupRepo:    groupRepo,
		memberRepo:   memberRepo,
		geocoder:     geocoder,
		log:          log,
	}
}

func (s *ListOfficesService) Execute(ctx context.Context, input in.ListOfficesInput) (*in.ListOfficesOutput, error) {
	offices, err := s.officeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offices: %w", err)
	}

	// A failed or empty reference lookup degrades to a directory without
	// distances, it never fails the listing.
	var ref *domain.Coordinate
	if input.ReferenceAddress != "" {
		results, err := s.geocoder.Geocode(ctx, input.ReferenceAddress)
		switch {
		case err != nil:
			s.log.Debug(logger.Entry{
				Action:  "reference_geocode_failed",
				Message: err.Error(),
			})
		case len(results) > 0:
			ref = &results[0]
		}
	}

	summaries := make([]domain.OfficeSummary, 0, len(offices))
	for _, office := range offices {
		summary, err := s.summarize(ctx, office)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			d := domain.DistanceKm(*ref, domain.Coordinate{Latitude: office.Latitude, Longitude: office.Longitude})
			summary.DistanceKm = &d
		}
		summaries = append(summaries, *summary)
	}

	return &in.ListOfficesOutput{Offices: summaries}, nil
}

func (s *ListOfficesService) summarize(ctx context.Context, office *domain.OfficeLocation) (*domain.OfficeSummary, error) {
	schedules, err := s.scheduleRepo.FindByOfficeID(ctx, office.ID)
	if err != nil {
		return nil, fmt.Errorf("schedules for office %s: %w", office.ID, err)
	}

	officeUsers := make(map[string]struct{}, len(schedules))
	for _, sched := range schedules {
		officeUsers[sched.UserID] = struct{}{}
	}

	groups, err := s.groupRepo.FindByOfficeIDs(ctx, []string{office.ID})
	if err != nil {
		return nil, fmt.Errorf("groups for office %s: %w", office.ID, err)
	}

	// A user counts as carpooling at this office only via this office's own
	// groups, and only if they are scheduled here: a member with no schedule
	// at the office would otherwise push the rate past 100%.
	inCarpools := make(map[string]struct{})
	for _, g := range groups {
		memberships, err := s.memberRepo.FindByGroupID(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("members of group %s: %w", g.ID, err)
		}
		for _, m := range memberships {
			if _, scheduled := officeUsers[m.UserID]; scheduled {
				inCarpools[m.UserID] = struct{}{}
			}
		}
	}

	total := len(officeUsers)
	carpooling := len(inCarpools)
	rate := 0.0
	if total > 0 {
		rate = float64(carpooling) / float64(total) * 100
	}

	return &domain.OfficeSummary{
		Office:            *office,
		TotalUsers:        total,
		UsersInCarpools:   carpooling,
		ParticipationRate: rate,
	}, nil
}
