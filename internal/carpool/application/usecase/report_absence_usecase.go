package usecase

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"
)

// ReportAbsenceService implements ReportAbsenceUseCase: tell every group the
// caller belongs to that they will be out. The date string passes through
// verbatim; the engine does not parse calendars.
type ReportAbsenceService struct {
	userRepo      out.UserRepository
	memberRepo    out.MembershipRepository
	groupNotifier GroupNotifier
	log           *logger.Logger
}

func NewReportAbsenceService(
	userRepo out.UserRepository,
	memberRepo out.MembershipRepository,
	groupNotifier GroupNotifier,
	log *logger.Logger,
) *ReportAbsenceService {
	return &ReportAbsenceService{
		userRepo:      userRepo,
		memberRepo:    memberRepo,
		groupNotifier: groupNotifier,
		log:           log,
	}
}

func (s *ReportAbsenceService) Execute(ctx context.Context, input in.ReportAbsenceInput) (*in.ReportAbsenceOutput, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.memberRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("find memberships: %w", err)
	}
	if len(memberships) == 0 {
		return nil, domain.ErrNotInAnyGroup
	}

	text := fmt.Sprintf("%s will be absent on %s", user.Name(), input.Date)
	if input.Reason != "" {
		text = fmt.Sprintf("%s (%s)", text, input.Reason)
	}

	for _, m := range memberships {
		s.groupNotifier.NotifyGroup(ctx, m.GroupID, out.Notification{
			Kind: "absence",
			Text: text,
			Payload: map[string]any{
				"user_id": user.ID,
				"date":    input.Date,
				"reason":  input.Reason,
			},
		})
	}

	s.log.Info(logger.Entry{
		Action:  "absence_reported",
		Message: fmt.Sprintf("%s out on %s, %d groups told", user.Name(), input.Date, len(memberships)),
		Additional: map[string]any{
			"user_id": user.ID,
		},
	})

	return &in.ReportAbsenceOutput{GroupsNotified: len(memberships)}, nil
}
