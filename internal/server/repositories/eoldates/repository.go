package eoldates

import (
	"context"

	"github.com/trackvers/trackvers/internal/server/models"
)

type Repository interface {
	ListBySoftwareIDs(ctx context.Context, softwareIDs []string) ([]*models.EOLDates, error)
	Upsert(ctx context.Context, d *models.EOLDates) error
}
