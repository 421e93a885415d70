package in

import "context"

// StatsOutput — the stats command totals.
type StatsOutput struct {
	TotalUsers    int `json:"total_users"`
	TotalCarpools int `json:"total_carpools"`
	TotalMembers  int `json:"total_members"`
}

type StatsUseCase interface {
	Execute(ctx context.Context) (*StatsOutput, error)
}
