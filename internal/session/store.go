package session

import (
	"context"

	"github.com/noorskin/storefront/internal/domain"
)

// Store persists the session record between process restarts.
// Load returns (nil, nil) when nothing has been stored.
type Store interface {
	Load(ctx context.Context) (*domain.PersistedSession, error)
	Save(ctx context.Context, record domain.PersistedSession) error
	Clear(ctx context.Context) error
}
