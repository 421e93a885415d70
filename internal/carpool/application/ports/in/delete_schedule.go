package in

import "context"

// DeleteScheduleInput — remove one of the caller's schedule rows.
type DeleteScheduleInput struct {
	UserID     string
	ScheduleID string
}

type DeleteScheduleUseCase interface {
	Execute(ctx context.Context, input DeleteScheduleInput) error
}
