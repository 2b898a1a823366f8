// Package common contains shared constants and sentinel errors used across
// TrackVers components.
package common

// Roles stored in the profiles table. An empty stored role is defaulted to
// RoleUser on the client, never rewritten in the database.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultCategory is the bucket used when a software item has no category.
const DefaultCategory = "Uncategorized"
