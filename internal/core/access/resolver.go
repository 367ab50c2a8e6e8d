// Package access resolves the caller of an authenticated operation, checks the
// caller's role against the operation's policy and hands back the tenant scope
// every repository call must be constrained by.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// Resolver turns the session attached to a request into a domain.Identity.
type Resolver struct {
	sessions ports.SessionProvider
	profiles ports.ProfileStore
}

func NewResolver(sessions ports.SessionProvider, profiles ports.ProfileStore) *Resolver {
	return &Resolver{sessions: sessions, profiles: profiles}
}

// Resolve returns the caller's identity. It fails with domain.ErrUnauthenticated
// when there is no session or the session's user has no profile. It has no side
// effects and may be called any number of times per request.
func (r *Resolver) Resolve(ctx context.Context) (domain.Identity, error) {
	su, err := r.sessions.CurrentUser(ctx)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("resolve session: %w", err)
	}
	if su == nil || su.ID == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	profile, err := r.profiles.LookupProfile(ctx, su.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, domain.ErrUnauthenticated
		}
		return domain.Identity{}, fmt.Errorf("lookup profile: %w", err)
	}

	return domain.Identity{
		UserID:   profile.ID,
		Email:    su.Email,
		DealerID: profile.DealerID,
		Role:     profile.Role,
		Active:   profile.IsActive,
	}, nil
}
