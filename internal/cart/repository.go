package cart

import "context"

// Repository persists cart lines per store and browser session.
type Repository interface {
	// Load returns an empty slice when nothing was stored yet.
	Load(ctx context.Context, storeID, sessionID string) ([]LineItem, error)
	Save(ctx context.Context, storeID, sessionID string, items []LineItem) error
	Delete(ctx context.Context, storeID, sessionID string) error
}
