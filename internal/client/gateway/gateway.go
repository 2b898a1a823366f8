// Package gateway is the client's only door to the backend: a thin typed
// wrapper over the HTTP API. Every failure is normalized into *BackendError;
// the gateway never retries.
package gateway

import (
	"context"

	"github.com/trackvers/trackvers/internal/client/models"
)

// Gateway is consumed by the stores; tests substitute a fake.
type Gateway interface {
	// auth
	Register(ctx context.Context, email, password, fullName string) (*models.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	FetchSession(ctx context.Context) (*SessionInfo, error)

	// catalog
	FetchCatalog(ctx context.Context) ([]models.SoftwareItem, error)
	FetchEOLDates(ctx context.Context, softwareIDs []string) ([]models.EOLDates, error)

	// favorites (remote half; the anonymous local half lives in localdata)
	FetchFavorites(ctx context.Context) ([]string, error)
	AddFavorite(ctx context.Context, softwareID string) error
	RemoveFavorite(ctx context.Context, softwareID string) error

	// tracked versions
	FetchTrackedVersions(ctx context.Context) ([]models.TrackedVersion, error)
	InsertTrackedVersion(ctx context.Context, softwareID, version string) (*models.TrackedVersion, error)
	UpdateTrackedVersion(ctx context.Context, recordID, version string) error
	DeleteTrackedVersion(ctx context.Context, recordID string) error
	DeleteTrackedBySoftware(ctx context.Context, softwareID string) error

	// profile
	FetchProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, fullName string, notifyEmail, notifyBrowser bool) error

	// push notifications
	SubscribePush(ctx context.Context, endpoint, p256dh, auth string) error
	UnsubscribePush(ctx context.Context, endpoint string) error

	// callable functions
	InvokeVersionCheck(ctx context.Context, softwareIDs []string) error
	CreateAdminUser(ctx context.Context, email, password, fullName string) error

	// admin catalog management
	CreateSoftware(ctx context.Context, item *models.SoftwareItem) error
	UpdateSoftware(ctx context.Context, item *models.SoftwareItem) error
	DeleteSoftware(ctx context.Context, id string) error
	LogoUploadURL(ctx context.Context, id string) (string, error)

	// token handling
	SetTokens(pair *models.TokenPair)
	Tokens() *models.TokenPair
}

// SessionInfo is the resolved identity behind the current access token. The
// profile may be nil when the profile row is missing.
type SessionInfo struct {
	UserID  string          `json:"user_id"`
	Email   string          `json:"email"`
	Profile *models.Profile `json:"profile"`
}
