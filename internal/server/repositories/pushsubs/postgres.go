package pushsubs

import (
	"context"
	"fmt"

	"github.com/trackvers/trackvers/internal/dbx"
	"github.com/trackvers/trackvers/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, s *models.PushSubscription) error {
	query :=
		`INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, endpoint) DO UPDATE
		 SET p256dh = excluded.p256dh, auth = excluded.auth
		 `

	_, err := r.db.ExecContext(ctx, query, s.UserID, s.Endpoint, s.P256DH, s.Auth)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, endpoint string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM push_subscriptions WHERE user_id = $1 AND endpoint = $2`, userID, endpoint)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
