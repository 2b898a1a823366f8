package favorites

import "context"

type Repository interface {
	// ListIDs returns the software IDs favorited by the user.
	ListIDs(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, softwareID string) error
	Remove(ctx context.Context, userID, softwareID string) error
}
