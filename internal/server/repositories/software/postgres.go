package software

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trackvers/trackvers/internal/common"
	"github.com/trackvers/trackvers/internal/dbx"
	"github.com/trackvers/trackvers/internal/server/models"
)

const selectColumns = `id, name, icon, category, description, latest_version, logo_url, source_url,
		last_updated, last_checked, eol_date, end_of_support_date, end_of_maintenance_date`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanSoftware(row interface{ Scan(...any) error }) (*models.Software, error) {
	s := &models.Software{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Icon, &s.Category, &s.Description, &s.LatestVersion, &s.LogoURL, &s.SourceURL,
		&s.LastUpdated, &s.LastChecked, &s.EOLDate, &s.EndOfSupportDate, &s.EndOfMaintenanceDate)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Software, error) {
	query := `SELECT ` + selectColumns + ` FROM software ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Software
	for rows.Next() {
		s, err := scanSoftware(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Software, error) {
	query := `SELECT ` + selectColumns + ` FROM software WHERE id = ANY($1) ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Software
	for rows.Next() {
		s, err := scanSoftware(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Software, error) {
	query := `SELECT ` + selectColumns + ` FROM software WHERE id = $1`

	s, err := scanSoftware(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Software) error {
	query :=
		`INSERT INTO software (id, name, icon, category, description, latest_version, logo_url, source_url, last_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Icon, s.Category, s.Description, s.LatestVersion, s.LogoURL, s.SourceURL, s.LastUpdated)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.Software) error {
	query :=
		`UPDATE software
		 SET name = $2, icon = $3, category = $4, description = $5, latest_version = $6,
		     logo_url = $7, source_url = $8, last_updated = $9
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Icon, s.Category, s.Description, s.LatestVersion, s.LogoURL, s.SourceURL, s.LastUpdated)
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

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM software WHERE id = $1`, id)
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

func (r *PostgresRepository) SetLogoURL(ctx context.Context, id, logoURL string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE software SET logo_url = $2 WHERE id = $1`, id, logoURL)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetCheckResult(ctx context.Context, id, latestVersion string, checkedAt time.Time) error {
	query :=
		`UPDATE software
		 SET latest_version = $2, last_checked = $3, last_updated = $3
		 WHERE id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, id, latestVersion, checkedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
