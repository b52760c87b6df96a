package repositories

import (
	"context"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
)

// UserRepository defines the interface for user record lookups.
type UserRepository interface {
	// GetByEmail returns the user with the given email, or a NOT_FOUND
	// error when no such record exists.
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
