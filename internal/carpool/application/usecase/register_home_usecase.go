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
)

// RegisterHomeService implements RegisterHomeUseCase.
type RegisterHomeService struct {
	userRepo out.UserRepository
	geocoder out.Geocoder
	activity out.ActivityBroadcaster
	log      *logger.Logger
}

func NewRegisterHomeService(
	userRepo out.UserRepository,
	geocoder out.Geocoder,
	activity out.ActivityBroadcaster,
	log *logger.Logger,
) *RegisterHomeService {
	return &RegisterHomeService{
		userRepo: userRepo,
		geocoder: geocoder,
		activity: activity,
		log:      log,
	}
}

// Execute geocodes the address and creates the user on first registration or
// updates the existing record in place. Repeating the same input is a no-op
// update, never a duplicate.
func (s *RegisterHomeService) Execute(ctx context.Context, input in.RegisterHomeInput) (*in.RegisterHomeOutput, error) {
	results, err := s.geocoder.Geocode(ctx, input.Address)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "geocode_home_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"user_id": input.UserID,
			},
		})
		return nil, fmt.Errorf("geocode home address: %w", err)
	}
	if len(results) == 0 {
		return nil, domain.ErrAddressNotFound
	}
	coord := results[0]

	now := time.Now().UTC()
	created := false

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	switch {
	case errors.Is(err, domain.ErrNotRegistered):
		user = &domain.User{
			ID:                   input.UserID,
			DisplayName:          input.DisplayName,
			HomeAddress:          &input.Address,
			HomeLatitude:         &coord.Latitude,
			HomeLongitude:        &coord.Longitude,
			NotificationsEnabled: true,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		created = true
	case err != nil:
		return nil, fmt.Errorf("find user: %w", err)
	default:
		user.HomeAddress = &input.Address
		user.HomeLatitude = &coord.Latitude
		user.HomeLongitude = &coord.Longitude
		if input.DisplayName != "" {
			user.DisplayName = input.DisplayName
		}
		user.UpdatedAt = now
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	s.log.Info(logger.Entry{
		Action:  "home_registered",
		Message: fmt.Sprintf("user %s set home address", user.Name()),
		Additional: map[string]any{
			"user_id": user.ID,
			"created": created,
		},
	})

	if err := s.activity.Broadcast(ctx, out.ActivityEvent{
		Type:    "user_registered",
		Message: fmt.Sprintf("%s updated their home location", user.Name()),
	}); err != nil {
		s.log.Debug(logger.Entry{Action: "activity_broadcast_failed", Message: err.Error()})
	}

	return &in.RegisterHomeOutput{
		UserID:    user.ID,
		Address:   input.Address,
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
		Created:   created,
	}, nil
}
