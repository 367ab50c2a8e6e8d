package ports

import (
	"context"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// SignupInput creates a dealer together with its first administrator.
type SignupInput struct {
	DealerName string
	DealerSlug string
	Name       string
	Email      string
	Password   string
}

// PublicContext carries abuse-mitigation inputs for unauthenticated calls.
type PublicContext struct {
	// Fingerprint identifies the client, typically its IP address.
	Fingerprint string
	// ChallengeToken is the proof-of-humanity token from the form, if any.
	ChallengeToken string
}

type AuthService interface {
	Signup(ctx context.Context, pc PublicContext, in SignupInput) (string, *domain.User, error)
	Login(ctx context.Context, pc PublicContext, email, password string) (string, *domain.User, error)
}
