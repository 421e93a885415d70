package in

import (
	"context"

	"carpool/internal/carpool/domain"
)

// SetScheduleInput — the set-schedule command. Times are HH:mm, days a
// comma-separated list of 1..7.
type SetScheduleInput struct {
	UserID     string
	OfficeName string
	StartTime  string
	EndTime    string
	DaysOfWeek string
}

type SetScheduleOutput struct {
	Schedule domain.WorkSchedule `json:"schedule"`
}

// SetScheduleUseCase validates and inserts a new schedule row. A user may
// hold several schedules this way, one commute pattern per office visit.
type SetScheduleUseCase interface {
	Execute(ctx context.Context, input SetScheduleInput) (*SetScheduleOutput, error)
}
