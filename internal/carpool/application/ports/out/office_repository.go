package out

import (
	"context"

	"carpool/internal/carpool/domain"
)

// OfficeRepository persists office locations.
type OfficeRepository interface {
	// Create inserts a new office.
	Create(ctx context.Context, office *domain.OfficeLocation) error

	// FindByID returns the office or domain.ErrOfficeNotFound.
	FindByID(ctx context.Context, officeID string) (*domain.OfficeLocation, error)

	// FindByName returns the office or domain.ErrOfficeNotFound.
	FindByName(ctx context.Context, name string) (*domain.OfficeLocation, error)

	// FindAll returns every office, stable by creation order.
	FindAll(ctx context.Context) ([]*domain.OfficeLocation, error)
}
