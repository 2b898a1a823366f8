package eoldates

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

func (r *PostgresRepository) ListBySoftwareIDs(ctx context.Context, softwareIDs []string) ([]*models.EOLDates, error) {
	query :=
		`SELECT software_id, eol_date, end_of_support_date, end_of_maintenance_date, source, updated_at
		 FROM eol_eos_dates
		 WHERE software_id = ANY($1)
		 `

	rows, err := r.db.QueryContext(ctx, query, softwareIDs)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.EOLDates
	for rows.Next() {
		d := &models.EOLDates{}
		if err := rows.Scan(&d.SoftwareID, &d.EOLDate, &d.EndOfSupportDate, &d.EndOfMaintenanceDate, &d.Source, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, d *models.EOLDates) error {
	query :=
		`INSERT INTO eol_eos_dates (software_id, eol_date, end_of_support_date, end_of_maintenance_date, source, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (software_id) DO UPDATE
		 SET eol_date = excluded.eol_date,
		     end_of_support_date = excluded.end_of_support_date,
		     end_of_maintenance_date = excluded.end_of_maintenance_date,
		     source = excluded.source,
		     updated_at = now()
		 `

	_, err := r.db.ExecContext(ctx, query,
		d.SoftwareID, d.EOLDate, d.EndOfSupportDate, d.EndOfMaintenanceDate, d.Source)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
