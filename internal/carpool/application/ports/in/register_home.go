package in

import "context"

// RegisterHomeInput — the set-home command. DisplayName is whatever label
// the chat gateway has for the user and may be empty.
type RegisterHomeInput struct {
	UserID      string
	DisplayName string
	Address     string
}

// RegisterHomeOutput returns the stored record.
type RegisterHomeOutput struct {
	UserID    string  `json:"user_id"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Created   bool    `json:"created"` // false when an existing record was updated
}

// RegisterHomeUseCase geocodes the address and creates or updates the user.
type RegisterHomeUseCase interface {
	Execute(ctx context.Context, input RegisterHomeInput) (*RegisterHomeOutput, error)
}
