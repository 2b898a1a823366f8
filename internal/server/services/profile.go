package services

import (
	"context"
	"database/sql"

	"github.com/trackvers/trackvers/internal/server/models"
	"github.com/trackvers/trackvers/internal/server/repositories/repomanager"
)

// ProfileService reads and updates the profiles row mirroring the auth user.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).Get(ctx, userID)
}

// Update changes the user-editable fields: full name and notification
// preferences. Role and email are not editable here.
func (s *ProfileService) Update(ctx context.Context, userID, fullName string, notifyEmail, notifyBrowser bool) error {
	p := &models.Profile{ID: userID, FullName: fullName, NotifyEmail: notifyEmail, NotifyBrowser: notifyBrowser}
	return s.repomanager.Profiles(s.db).Update(ctx, p)
}
