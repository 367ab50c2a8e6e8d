package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/pkg/metrics"
)

// Authorize returns id unchanged when it is active and its role is one of
// allowed. Otherwise it fails with domain.ErrUnauthorized.
func Authorize(id domain.Identity, allowed ...domain.Role) (domain.Identity, error) {
	if !id.Active {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	for _, r := range allowed {
		if id.Role == r {
			return id, nil
		}
	}
	return domain.Identity{}, domain.ErrUnauthorized
}

// Guard is the single entry point of every authenticated operation:
// resolve the caller, authorize it against the policy, return its scope.
type Guard struct {
	resolver *Resolver
	policy   Policy
	log      zerolog.Logger
}

func NewGuard(resolver *Resolver, policy Policy, log zerolog.Logger) *Guard {
	return &Guard{resolver: resolver, policy: policy, log: log}
}

// Enter must be called before any read or write performed on behalf of op.
// Operations missing from the policy are rejected.
func (g *Guard) Enter(ctx context.Context, op string) (Scope, error) {
	id, err := g.resolver.Resolve(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			metrics.AccessDecisionsTotal.WithLabelValues(op, "unauthenticated").Inc()
		}
		return Scope{}, err
	}

	allowed, ok := g.policy[op]
	if !ok {
		g.log.Error().Str("op", op).Msg("operation has no access policy")
		metrics.AccessDecisionsTotal.WithLabelValues(op, "unauthorized").Inc()
		return Scope{}, fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}

	if _, err := Authorize(id, allowed...); err != nil {
		g.log.Warn().
			Str("op", op).
			Str("user_id", id.UserID).
			Str("role", string(id.Role)).
			Bool("active", id.Active).
			Msg("access denied")
		metrics.AccessDecisionsTotal.WithLabelValues(op, "unauthorized").Inc()
		return Scope{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.AccessDecisionsTotal.WithLabelValues(op, "allowed").Inc()
	return newScope(id)
}
