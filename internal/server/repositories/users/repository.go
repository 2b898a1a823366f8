package users

import (
	"context"

	"github.com/trackvers/trackvers/internal/server/models"
)

// Repository is the account storage behind registration, login and session
// resolution.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
