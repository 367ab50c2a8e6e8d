// Package session issues and verifies the bearer tokens that identify staff
// users, and carries the verified caller through the request context.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

const (
	DefaultTTL = 24 * time.Hour
	issuer     = "dealership-api"
)

// ErrInvalidToken is returned by Parse for any token that fails verification.
var ErrInvalidToken = errors.New("invalid session token")

// claims only identify the user. Role and dealer are always re-read from the
// store so that a changed role takes effect on the next request.
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("session: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue mints a token for user.
func (t *Tokens) Issue(user *domain.User) (string, error) {
	now := t.now()
	c := claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns the session user it identifies.
func (t *Tokens) Parse(raw string) (*ports.SessionUser, error) {
	var c claims
	tkn, err := jwt.ParseWithClaims(raw, &c, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &ports.SessionUser{ID: c.Subject, Email: c.Email}, nil
}

type ctxKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *ports.SessionUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the session user stored by WithUser, or nil.
func FromContext(ctx context.Context) *ports.SessionUser {
	u, _ := ctx.Value(ctxKey{}).(*ports.SessionUser)
	return u
}

// Provider reads the caller placed in the context by the HTTP layer.
type Provider struct{}

func (Provider) CurrentUser(ctx context.Context) (*ports.SessionUser, error) {
	return FromContext(ctx), nil
}
