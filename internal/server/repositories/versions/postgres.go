package versions

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

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.TrackedVersion, error) {
	query :=
		`SELECT id, user_id, software_id, current_version FROM user_software_versions
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.TrackedVersion
	for rows.Next() {
		v := &models.TrackedVersion{}
		if err := rows.Scan(&v.ID, &v.UserID, &v.SoftwareID, &v.CurrentVersion); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByUserAndSoftware(ctx context.Context, userID, softwareID string) (*models.TrackedVersion, error) {
	query :=
		`SELECT id, user_id, software_id, current_version FROM user_software_versions
		 WHERE user_id = $1 AND software_id = $2
		 `

	v := &models.TrackedVersion{}
	err := r.db.QueryRowContext(ctx, query, userID, softwareID).Scan(&v.ID, &v.UserID, &v.SoftwareID, &v.CurrentVersion)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return v, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, v *models.TrackedVersion) (*models.TrackedVersion, error) {
	query :=
		`INSERT INTO user_software_versions (user_id, software_id, current_version)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, v.UserID, v.SoftwareID, v.CurrentVersion).Scan(&v.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return v, nil
}

func (r *PostgresRepository) UpdateVersion(ctx context.Context, recordID, userID, currentVersion string) error {
	query :=
		`UPDATE user_software_versions SET current_version = $3
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, recordID, userID, currentVersion)
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

func (r *PostgresRepository) DeleteByID(ctx context.Context, recordID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_software_versions WHERE id = $1 AND user_id = $2`, recordID, userID)
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

func (r *PostgresRepository) DeleteByUserAndSoftware(ctx context.Context, userID, softwareID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_software_versions WHERE user_id = $1 AND software_id = $2`, userID, softwareID)
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
