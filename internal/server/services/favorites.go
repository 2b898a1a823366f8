package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trackvers/trackvers/internal/server/repositories/repomanager"
)

// FavoritesService owns the user_favorites join table. Rows are
// existence-only; the anonymous local-storage fallback lives in the client.
type FavoritesService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFavoritesService(db *sql.DB, m repomanager.RepositoryManager) *FavoritesService {
	return &FavoritesService{db: db, repomanager: m}
}

func (s *FavoritesService) ListIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.repomanager.Favorites(s.db).ListIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}
	return ids, nil
}

func (s *FavoritesService) Add(ctx context.Context, userID, softwareID string) error {
	return s.repomanager.Favorites(s.db).Add(ctx, userID, softwareID)
}

func (s *FavoritesService) Remove(ctx context.Context, userID, softwareID string) error {
	return s.repomanager.Favorites(s.db).Remove(ctx, userID, softwareID)
}
