package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trackvers/trackvers/internal/common"
	"github.com/trackvers/trackvers/internal/server/models"
	"github.com/trackvers/trackvers/internal/server/repositories/repomanager"
)

// TrackingService owns the user_software_versions table. At most one row
// exists per (user, software) pair; Track checks explicitly before inserting
// so a double add surfaces as a friendly "already tracked" outcome instead
// of a constraint error.
type TrackingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTrackingService(db *sql.DB, m repomanager.RepositoryManager) *TrackingService {
	return &TrackingService{db: db, repomanager: m}
}

func (s *TrackingService) ListByUser(ctx context.Context, userID string) ([]*models.TrackedVersion, error) {
	rows, err := s.repomanager.Versions(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tracked versions: %w", err)
	}
	return rows, nil
}

func (s *TrackingService) Track(ctx context.Context, userID, softwareID, currentVersion string) (*models.TrackedVersion, error) {
	if softwareID == "" || currentVersion == "" {
		return nil, fmt.Errorf("%w: software id and version are required", common.ErrorValidation)
	}

	repo := s.repomanager.Versions(s.db)

	existing, err := repo.GetByUserAndSoftware(ctx, userID, softwareID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking tracked version: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: already tracking %q", common.ErrorAlreadyExists, softwareID)
	}

	row := &models.TrackedVersion{UserID: userID, SoftwareID: softwareID, CurrentVersion: currentVersion}
	inserted, err := repo.Insert(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("error inserting tracked version: %w", err)
	}

	return inserted, nil
}

func (s *TrackingService) UpdateVersion(ctx context.Context, recordID, userID, currentVersion string) error {
	if currentVersion == "" {
		return fmt.Errorf("%w: version is required", common.ErrorValidation)
	}
	return s.repomanager.Versions(s.db).UpdateVersion(ctx, recordID, userID, currentVersion)
}

func (s *TrackingService) Untrack(ctx context.Context, recordID, userID string) error {
	return s.repomanager.Versions(s.db).DeleteByID(ctx, recordID, userID)
}

func (s *TrackingService) UntrackBySoftware(ctx context.Context, userID, softwareID string) error {
	return s.repomanager.Versions(s.db).DeleteByUserAndSoftware(ctx, userID, softwareID)
}
