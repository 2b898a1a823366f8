// Package localdata is the client's persistent key/value store, backed by an
// embedded SQLite database. It stands in for browser local storage: anonymous
// favorites, the tutorial-completed flag and the saved session live here.
package localdata

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trackvers/trackvers/internal/client/localdata/migrations"
	"github.com/trackvers/trackvers/internal/dbx"
)

// Well-known metadata keys.
const (
	// KeyFavorites holds the anonymous favorites list as a JSON array of
	// software ids.
	KeyFavorites = "tech-favorites"
	// KeyTutorialCompleted marks the onboarding tutorial as done.
	KeyTutorialCompleted = "trackvers_tutorial_completed"
	// KeySession holds the persisted token pair as JSON.
	KeySession = "trackvers_session"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

type SQLiteStore struct {
	db dbx.DBTX
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local database at dsn, applies
// migrations and returns a store bound to it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, *SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, NewSQLiteStore(db), nil
}

// Get returns the stored value or nil when the key is absent.
func (r *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata`)
	if err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}
