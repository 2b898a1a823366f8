package models

import "time"

// Software is one catalog entry. The ID is a stable slug ("python",
// "nodejs") chosen by the admin who creates the row. Optional fields are
// empty/nil when unknown.
type Software struct {
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
}
