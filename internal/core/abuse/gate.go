package abuse

import (
	"context"
	"errors"
	"time"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/pkg/metrics"
)

// ChallengeVerifier is satisfied by *Verifier.
type ChallengeVerifier interface {
	Verify(ctx context.Context, token string) error
}

// Gate admits public submissions: bot challenge first, then rate limit.
type Gate struct {
	verifier ChallengeVerifier
	limiter  Limiter
	window   time.Duration
	max      int
}

func NewGate(verifier ChallengeVerifier, limiter Limiter, window time.Duration, max int) *Gate {
	if limiter == nil {
		limiter = Default()
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxRequests
	}
	return &Gate{verifier: verifier, limiter: limiter, window: window, max: max}
}

// Admit must be called before validating or persisting a public submission.
// The rate-limit key is action plus the client fingerprint.
func (g *Gate) Admit(ctx context.Context, action, fingerprint, token string) error {
	if err := g.verifier.Verify(ctx, token); err != nil {
		metrics.PublicGateTotal.WithLabelValues(action, "captcha_failed").Inc()
		return err
	}
	if err := g.limiter.Check(action+":"+fingerprint, g.window, g.max); err != nil {
		if errors.Is(err, domain.ErrTooManyRequests) {
			metrics.PublicGateTotal.WithLabelValues(action, "rate_limited").Inc()
		}
		return err
	}
	metrics.PublicGateTotal.WithLabelValues(action, "admitted").Inc()
	return nil
}

// Window is the configured rate-limit window. The HTTP layer falls back to it
// for Retry-After when a rejection carries no wait of its own.
func (g *Gate) Window() time.Duration { return g.window }
