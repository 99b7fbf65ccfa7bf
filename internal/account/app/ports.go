package app

import (
	"context"

	"github.com/dimasqi/storefront/internal/account/domain"
)

type UserRepo interface {
	// Create returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// SessionStore issues opaque tokens resolving to a user until revoked or
// expired. It is the authenticated session provider the rest of the app
// consumes.
type SessionStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	// Resolve returns ErrSessionNotFound for unknown or expired tokens.
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}
