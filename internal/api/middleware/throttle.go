package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// HeaderChallengeToken carries the bot challenge token for clients that do not
// send it in the form body.
const HeaderChallengeToken = "X-Challenge-Token"

// Fingerprint identifies the client for per-client limits. It is only as
// trustworthy as the router's IPExtractor; see ClientIP.
func Fingerprint(c echo.Context) string {
	return c.RealIP()
}

// ClientIP is the router's IPExtractor. With no trusted proxies the peer
// address is used and forwarding headers are ignored. Otherwise
// X-Forwarded-For is honoured only across hops inside the trusted ranges.
func ClientIP(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// Throttle is a coarse per-client token bucket over the whole API. The
// tighter per-action limit on public forms is enforced in the core.
// rps <= 0 disables it.
func Throttle(rps float64, burst int) echo.MiddlewareFunc {
	if rps <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if burst <= 0 {
		burst = int(rps) * 2
		if burst < 1 {
			burst = 1
		}
	}

	// Time for the bucket to regain one token.
	refill := time.Duration(float64(time.Second) / rps)

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/health" || p == "/health/ready" || p == "/metrics"
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return Fingerprint(c), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "client not identifiable")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return &domain.RetryAfterError{After: refill}
		},
	})
}
