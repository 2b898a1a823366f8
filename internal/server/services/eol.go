package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trackvers/trackvers/internal/server/models"
	"github.com/trackvers/trackvers/internal/server/repositories/repomanager"
)

// EOLService exposes lifecycle rows for the dashboard's end-of-life badges.
type EOLService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewEOLService(db *sql.DB, m repomanager.RepositoryManager) *EOLService {
	return &EOLService{db: db, repomanager: m}
}

func (s *EOLService) ListBySoftwareIDs(ctx context.Context, softwareIDs []string) ([]*models.EOLDates, error) {
	if len(softwareIDs) == 0 {
		return nil, nil
	}
	rows, err := s.repomanager.EOLDates(s.db).ListBySoftwareIDs(ctx, softwareIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing eol dates: %w", err)
	}
	return rows, nil
}
