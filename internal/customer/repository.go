package customer

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	// Sessions are keyed by store and phone, so one phone gets one session per store.
	SaveSession(ctx context.Context, s *model.CustomerSession) error
	FindSession(ctx context.Context, storeID, phone string) (*model.CustomerSession, error)

	// Contacts are keyed by browser session.
	SaveContact(ctx context.Context, browserSessionID string, c *model.Contact) error
	GetContact(ctx context.Context, browserSessionID string) (*model.Contact, error)
}
