package in

import (
	"context"

	"carpool/internal/carpool/domain"
)

// AddOfficeInput — the add-office admin command.
type AddOfficeInput struct {
	Name    string
	Address string
}

type AddOfficeOutput struct {
	Office domain.OfficeLocation `json:"office"`
}

// AddOfficeUseCase geocodes the address and creates a uniquely named office.
type AddOfficeUseCase interface {
	Execute(ctx context.Context, input AddOfficeInput) (*AddOfficeOutput, error)
}
