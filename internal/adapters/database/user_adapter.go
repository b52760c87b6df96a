package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
	"github.com/ammahealth/explainer-backend/internal/domain/repositories"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
)

// UserAdapter implements user lookups in Postgres.
type UserAdapter struct {
	client *postgres.Client
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{client: client}
}

// GetByEmail retrieves a user by email.
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT email, first_name, last_name, user_type, specialty, created_at
		FROM users
		WHERE email = $1
	`

	user := &entities.User{}
	var specialty sql.NullString
	err := a.client.DB().QueryRowContext(ctx, query, email).Scan(
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.UserType,
		&specialty,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	user.Specialty = specialty.String
	return user, nil
}
