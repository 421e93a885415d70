package usecase

import (
	"context"

	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/shared/logger"
)

// GroupNotifier fans one logical message out to every eligible member of a
// group. Implementations never fail the caller: a notification fault must
// not roll back the mutation that triggered it.
type GroupNotifier interface {
	NotifyGroup(ctx context.Context, groupID string, n out.Notification)
}

// GroupNotifyService resolves a group's members, filters by each member's
// notification preference and dispatches one message per eligible member.
type GroupNotifyService struct {
	memberRepo out.MembershipRepository
	userRepo   out.UserRepository
	notifier   out.Notifier
	activity   out.ActivityBroadcaster
	log        *logger.Logger
}

func NewGroupNotifyService(
	memberRepo out.MembershipRepository,
	userRepo out.UserRepository,
	notifier out.Notifier,
	activity out.ActivityBroadcaster,
	log *logger.Logger,
) *GroupNotifyService {
	return &GroupNotifyService{
		memberRepo: memberRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		activity:   activity,
		log:        log,
	}
}

// NotifyGroup delivers n to every notification-enabled member of the group.
// All failures (store reads included) are logged and swallowed; one member's
// failed dispatch never blocks delivery to the rest.
func (s *GroupNotifyService) NotifyGroup(ctx context.Context, groupID string, n out.Notification) {
	n.GroupID = groupID

	members, err := s.memberRepo.FindByGroupID(ctx, groupID)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "fanout_resolve_members_failed",
			Message: err.Error(),
			GroupID: groupID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return
	}

	sent := 0
	for _, m := range members {
		user, err := s.userRepo.FindByID(ctx, m.UserID)
		if err != nil {
			s.log.Error(logger.Entry{
				Action:  "fanout_resolve_user_failed",
				Message: err.Error(),
				GroupID: groupID,
				Error:   &logger.ErrObj{Msg: err.Error()},
				Additional: map[string]any{
					"user_id": m.UserID,
				},
			})
			continue
		}
		if !user.NotificationsEnabled {
			continue
		}
		if err := s.notifier.Send(ctx, user.ID, n); err != nil {
			s.log.Error(logger.Entry{
				Action:  "fanout_send_failed",
				Message: err.Error(),
				GroupID: groupID,
				Error:   &logger.ErrObj{Msg: err.Error()},
				Additional: map[string]any{
					"user_id": user.ID,
					"kind":    n.Kind,
				},
			})
			continue
		}
		sent++
	}

	if err := s.activity.Broadcast(ctx, out.ActivityEvent{
		Type:    n.Kind,
		GroupID: groupID,
		Message: n.Text,
	}); err != nil {
		s.log.Debug(logger.Entry{
			Action:  "activity_broadcast_failed",
			Message: err.Error(),
			GroupID: groupID,
		})
	}

	s.log.Debug(logger.Entry{
		Action:  "group_fanout_complete",
		Message: n.Kind,
		GroupID: groupID,
		Additional: map[string]any{
			"members": len(members),
			"sent":    sent,
		},
	})
}
