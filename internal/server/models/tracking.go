package models

// TrackedVersion associates a user with a software item and the version the
// user currently runs. At most one row exists per (UserID, SoftwareID).
type TrackedVersion struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	SoftwareID     string `json:"software_id"`
	CurrentVersion string `json:"current_version"`
}
