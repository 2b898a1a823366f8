package favorites

import (
	"context"
	"fmt"

	"github.com/trackvers/trackvers/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT software_id FROM user_favorites WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Add(ctx context.Context, userID, softwareID string) error {
	// favorites are existence-only; adding twice is a no-op
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_favorites (user_id, software_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, software_id) DO NOTHING`, userID, softwareID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, softwareID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND software_id = $2`, userID, softwareID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
