package out

import (
	"context"

	"carpool/internal/carpool/domain"
)

// Geocoder resolves free-text addresses to coordinates. An empty result list
// means "no match" and is not an error; infrastructure failures surface as
// domain.ErrLookupUnavailable.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]domain.Coordinate, error)
}
