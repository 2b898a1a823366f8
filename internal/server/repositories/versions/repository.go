package versions

import (
	"context"

	"github.com/trackvers/trackvers/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.TrackedVersion, error)
	GetByUserAndSoftware(ctx context.Context, userID, softwareID string) (*models.TrackedVersion, error)
	Insert(ctx context.Context, v *models.TrackedVersion) (*models.TrackedVersion, error)
	UpdateVersion(ctx context.Context, recordID, userID, currentVersion string) error
	DeleteByID(ctx context.Context, recordID, userID string) error
	DeleteByUserAndSoftware(ctx context.Context, userID, softwareID string) error
}
