package in

import (
	"context"

	"carpool/internal/carpool/domain"
)

// ListOfficesInput — the find-offices command. ReferenceAddress is optional;
// when it geocodes, each office is annotated with its distance.
type ListOfficesInput struct {
	ReferenceAddress string
}

type ListOfficesOutput struct {
	Offices []domain.OfficeSummary `json:"offices"`
}

type ListOfficesUseCase interface {
	Execute(ctx context.Context, input ListOfficesInput) (*ListOfficesOutput, error)
}
