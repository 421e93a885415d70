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

// CreateGroupService implements CreateGroupUseCase. Group names are not
// unique; two offices may each have a "morning crew".
type CreateGroupService struct {
	officeRepo out.OfficeRepository
	groupRepo  out.GroupRepository
	activity   out.ActivityBroadcaster
	log        *logger.Logger
}

func NewCreateGroupService(
	officeRepo out.OfficeRepository,
	groupRepo out.GroupRepository,
	activity out.ActivityBroadcaster,
	log *logger.Logger,
) *CreateGroupService {
	return &CreateGroupService{
		officeRepo: officeRepo,
		groupRepo:  groupRepo,
		activity:   activity,
		log:        log,
	}
}

func (s *CreateGroupService) Execute(ctx context.Context, input in.CreateGroupInput) (*in.CreateGroupOutput, error) {
	if input.MaxSize < 1 {
		return nil, domain.ErrInvalidCapacity
	}

	office, err := s.officeRepo.FindByName(ctx, input.OfficeName)
	if err != nil {
		return nil, err
	}

	// Duplicate names are legal but name lookups resolve the oldest row, so
	// leave a trace when a second group takes an existing name.
	if existing, err := s.groupRepo.FindByName(ctx, input.Name); err == nil {
		s.log.Warn(logger.Entry{
			Action:  "duplicate_group_name",
			Message: fmt.Sprintf("group name %s already in use", input.Name),
			GroupID: existing.ID,
		})
	}

	now := time.Now().UTC()
	group := &domain.CarpoolGroup{
		ID:        uuid.New().String(),
		Name:      input.Name,
		OfficeID:  office.ID,
		MaxSize:   input.MaxSize,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "group_created",
		Message: fmt.Sprintf("group %s (max %d) at %s", group.Name, group.MaxSize, office.Name),
		GroupID: group.ID,
		Additional: map[string]any{
			"office_id": office.ID,
		},
	})

	if err := s.activity.Broadcast(ctx, out.ActivityEvent{
		Type:    "group_created",
		GroupID: group.ID,
		Message: fmt.Sprintf("carpool group %s opened at %s", group.Name, office.Name),
	}); err != nil {
		s.log.Debug(logger.Entry{Action: "activity_broadcast_failed", Message: err.Error(), GroupID: group.ID})
	}

	return &in.CreateGroupOutput{Group: *group}, nil
}
