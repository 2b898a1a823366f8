package pushsubs

import (
	"context"

	"github.com/trackvers/trackvers/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, s *models.PushSubscription) error
	Delete(ctx context.Context, userID, endpoint string) error
}
