package out

import (
	"context"

	"carpool/internal/carpool/domain"
)

// ScheduleRepository persists work schedules. Schedules are the only entity
// the engine hard-deletes (by owner, by id).
type ScheduleRepository interface {
	// Create inserts a new schedule row.
	Create(ctx context.Context, schedule *domain.WorkSchedule) error

	// Update overwrites an existing schedule row.
	Update(ctx context.Context, schedule *domain.WorkSchedule) error

	// FindByUserID returns all schedules owned by a user, stable by creation
	// order.
	FindByUserID(ctx context.Context, userID string) ([]*domain.WorkSchedule, error)

	// FindOneByUserID returns the user's oldest schedule row, or
	// domain.ErrScheduleNotFound when they have none. Used by the set-office
	// upsert policy.
	FindOneByUserID(ctx context.Context, userID string) (*domain.WorkSchedule, error)

	// FindByOfficeID returns all schedules anchored at an office.
	FindByOfficeID(ctx context.Context, officeID string) ([]*domain.WorkSchedule, error)

	// DeleteByIDAndUser removes a schedule owned by the user; returns
	// domain.ErrScheduleNotFound when no such row exists.
	DeleteByIDAndUser(ctx context.Context, scheduleID, userID string) error
}
