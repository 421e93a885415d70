package in

import "context"

// ReportAbsenceInput — the out command: tell every group the caller belongs
// to that they will be absent.
type ReportAbsenceInput struct {
	UserID string
	Date   string // YYYY-MM-DD, passed through verbatim
	Reason string
}

// ReportAbsenceOutput reports how many groups were notified.
type ReportAbsenceOutput struct {
	GroupsNotified int `json:"groups_notified"`
}

type ReportAbsenceUseCase interface {
	Execute(ctx context.Context, input ReportAbsenceInput) (*ReportAbsenceOutput, error)
}
