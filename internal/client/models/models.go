// Package models holds the client-side view types built from gateway
// responses.
package models

import "time"

// Status is the derived tracking status of a software item. It is computed,
// never stored: StatusLatest when the tracked version equals the catalog's
// latest version by exact string comparison, StatusUpdateAvailable for any
// other tracked version, empty when untracked.
type Status string

const (
	StatusLatest          Status = "latest"
	StatusUpdateAvailable Status = "update-available"
)

// SoftwareItem is one catalog entry augmented with the current user's
// tracking state. CurrentVersion, TrackedID and Status are empty for
// untracked items and for anonymous sessions.
type SoftwareItem struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Icon                 string     `json:"icon,omitempty"`
	Category             string     `json:"category,omitempty"`
	Description          string     `json:"description,omitempty"`
	LatestVersion        string     `json:"latest_version,omitempty"`
	LogoURL              string     `json:"logo_url,omitempty"`
	SourceURL            string     `json:"source_url,omitempty"`
	LastUpdated          *time.Time `json:"last_updated,omitempty"`
	LastChecked          *time.Time `json:"last_checked,omitempty"`
	EOLDate              *time.Time `json:"eol_date,omitempty"`
	EndOfSupportDate     *time.Time `json:"end_of_support_date,omitempty"`
	EndOfMaintenanceDate *time.Time `json:"end_of_maintenance_date,omitempty"`

	CurrentVersion string `json:"current_version,omitempty"`
	TrackedID      string `json:"tracked_id,omitempty"`
	Status         Status `json:"status,omitempty"`
}

// Tracked returns whether the current user tracks this item.
func (s *SoftwareItem) Tracked() bool {
	return s.CurrentVersion != ""
}

// TrackedVersion is one user_software_versions row.
type TrackedVersion struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	SoftwareID     string `json:"software_id"`
	CurrentVersion string `json:"current_version"`
}

// EOLDates is the lifecycle row for one software item.
type EOLDates struct {
	SoftwareID           string     `json:"software_id"`
	EOLDate              *time.Time `json:"eol_date,omitempty"`
	EndOfSupportDate     *time.Time `json:"end_of_support_date,omitempty"`
	EndOfMaintenanceDate *time.Time `json:"end_of_maintenance_date,omitempty"`
	Source               string     `json:"source,omitempty"`
}

// Profile is the stored profiles row; Role may be empty and is defaulted to
// "user" only in the session provider's augmented user.
type Profile struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	NotifyEmail   bool   `json:"notify_email"`
	NotifyBrowser bool   `json:"notify_browser"`
}

// TokenPair bundles the access and refresh tokens of one session.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthUser is the identity record augmented with profile attributes; Role is
// never empty here ("user" is the default).
type AuthUser struct {
	ID       string
	Email    string
	Role     string
	FullName string
}

// IsAdmin reports whether the augmented role grants admin access.
func (u *AuthUser) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}
