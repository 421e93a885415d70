package in

import (
	"context"

	"carpool/internal/carpool/domain"
)

// SetOfficeInput — the set-office command: point the user's single schedule
// row at an existing office, creating it with defaults if needed.
type SetOfficeInput struct {
	UserID     string
	OfficeName string
}

type SetOfficeOutput struct {
	Schedule domain.WorkSchedule `json:"schedule"`
	Created  bool                `json:"created"`
}

// SetOfficeUseCase upserts the user's schedule. Contrast with
// SetScheduleUseCase, which always inserts a new row.
type SetOfficeUseCase interface {
	Execute(ctx context.Context, input SetOfficeInput) (*SetOfficeOutput, error)
}
