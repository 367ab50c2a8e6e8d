package ports

import (
	"context"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// SessionUser is what the authentication layer knows about the caller.
type SessionUser struct {
	ID    string
	Email string
}

// SessionProvider returns the caller attached to ctx, or nil when the request
// carries no valid session.
type SessionProvider interface {
	CurrentUser(ctx context.Context) (*SessionUser, error)
}

// ProfileStore looks up the persisted authorization profile of a user.
// It returns domain.ErrUserNotFound when no profile exists.
type ProfileStore interface {
	LookupProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// TokenIssuer mints session tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}
