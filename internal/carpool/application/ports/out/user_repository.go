package out

import (
	"context"

	"carpool/internal/carpool/domain"
)

// UserRepository persists commuter records.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *domain.User) error

	// FindByID returns the user or domain.ErrNotRegistered.
	FindByID(ctx context.Context, userID string) (*domain.User, error)

	// Update overwrites the mutable fields of an existing user.
	Update(ctx context.Context, user *domain.User) error

	// Count returns the total number of registered users.
	Count(ctx context.Context) (int, error)

	// FindAll returns every user, stable by creation order.
	FindAll(ctx context.Context) ([]*domain.User, error)
}
