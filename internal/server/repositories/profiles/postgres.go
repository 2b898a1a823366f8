package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trackvers/trackvers/internal/common"
	"github.com/trackvers/trackvers/internal/dbx"
	"github.com/trackvers/trackvers/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, profile *models.Profile) error {
	query :=
		`INSERT INTO profiles (id, full_name, email, role, notify_email, notify_browser)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.FullName, profile.Email, profile.Role, profile.NotifyEmail, profile.NotifyBrowser)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query :=
		`SELECT id, full_name, email, role, notify_email, notify_browser FROM profiles
		 WHERE id = $1
		 `

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.FullName, &p.Email, &p.Role, &p.NotifyEmail, &p.NotifyBrowser)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, profile *models.Profile) error {
	query :=
		`UPDATE profiles
		 SET full_name = $2, notify_email = $3, notify_browser = $4, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.FullName, profile.NotifyEmail, profile.NotifyBrowser)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
