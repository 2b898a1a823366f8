package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trackvers/trackvers/internal/common"
	"github.com/trackvers/trackvers/internal/server/models"
	"github.com/trackvers/trackvers/internal/server/repositories/repomanager"
)

// PushService stores browser push subscriptions keyed (user, endpoint).
// Delivery is handled by an external notifier; this service only persists
// the subscription payload.
type PushService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPushService(db *sql.DB, m repomanager.RepositoryManager) *PushService {
	return &PushService{db: db, repomanager: m}
}

func (s *PushService) Subscribe(ctx context.Context, sub *models.PushSubscription) error {
	if sub.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", common.ErrorValidation)
	}
	return s.repomanager.PushSubscriptions(s.db).Upsert(ctx, sub)
}

func (s *PushService) Unsubscribe(ctx context.Context, userID, endpoint string) error {
	return s.repomanager.PushSubscriptions(s.db).Delete(ctx, userID, endpoint)
}
