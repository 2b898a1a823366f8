package models

import "time"

// EOLDates is the lifecycle row for one software item, refreshed by the
// version-check function from the upstream release feed.
type EOLDates struct {
	SoftwareID           string     `json:"software_id"`
	EOLDate              *time.Time `json:"eol_date,omitempty"`
	EndOfSupportDate     *time.Time `json:"end_of_support_date,omitempty"`
	EndOfMaintenanceDate *time.Time `json:"end_of_maintenance_date,omitempty"`
	Source               string     `json:"source,omitempty"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
