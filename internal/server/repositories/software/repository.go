package software

import (
	"context"
	"time"

	"github.com/trackvers/trackvers/internal/server/models"
)

type Repository interface {
	// List returns the whole catalog ordered by name ascending.
	List(ctx context.Context) ([]*models.Software, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.Software, error)
	Get(ctx context.Context, id string) (*models.Software, error)
	Create(ctx context.Context, s *models.Software) error
	Update(ctx context.Context, s *models.Software) error
	Delete(ctx context.Context, id string) error
	SetLogoURL(ctx context.Context, id, logoURL string) error
	// SetCheckResult records the outcome of one upstream version check.
	SetCheckResult(ctx context.Context, id, latestVersion string, checkedAt time.Time) error
}
