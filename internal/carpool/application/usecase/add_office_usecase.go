package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"

	"github.com/google/uuid"
)

// AddOfficeService implements AddOfficeUseCase.
type AddOfficeService struct {
	officeRepo out.OfficeRepository
	geocoder   out.Geocoder
	activity   out.ActivityBroadcaster
	log        *logger.Logger
}

func NewAddOfficeService(
	officeRepo out.OfficeRepository,
	geocoder out.Geocoder,
	activity out.ActivityBroadcaster,
	log *logger.Logger,
) *AddOfficeService {
	return &AddOfficeService{
		officeRepo: officeRepo,
		geocoder:   geocoder,
		activity:   activity,
		log:        log,
	}
}

// Execute geocodes the address and creates a uniquely named office.
func (s *AddOfficeService) Execute(ctx context.Context, input in.AddOfficeInput) (*in.AddOfficeOutput, error) {
	results, err := s.geocoder.Geocode(ctx, input.Address)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "geocode_office_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"office_name": input.Name,
			},
		})
		return nil, fmt.Errorf("geocode office address: %w", err)
	}
	if len(results) == 0 {
		return nil, domain.ErrAddressNotFound
	}
	coord := results[0]

	_, err = s.officeRepo.FindByName(ctx, input.Name)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateOffice
	case !errors.Is(err, domain.ErrOfficeNotFound):
		return nil, fmt.Errorf("check office name: %w", err)
	}

	now := time.Now().UTC()
	office := &domain.OfficeLocation{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Address:   input.Address,
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.officeRepo.Create(ctx, office); err != nil {
		return nil, fmt.Errorf("create office: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "office_added",
		Message: fmt.Sprintf("office %s added at %s", office.Name, office.Address),
		Additional: map[string]any{
			"office_id": office.ID,
		},
	})

	if err := s.activity.Broadcast(ctx, out.ActivityEvent{
		Type:    "office_added",
		Message: fmt.Sprintf("office %s added", office.Name),
	}); err != nil {
		s.log.Debug(logger.Entry{Action: "activity_broadcast_failed", Message: err.Error()})
	}

	return &in.AddOfficeOutput{Office: *office}, nil
}
