package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

var alice = &domain.User{ID: "user-1", Email: "alice@north.example", DealerID: "dealer-1", Role: domain.RoleAdmin}

func TestTokens_RoundTrip(t *testing.T) {
	tokens, err := NewTokens("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	raw, err := tokens.Issue(alice)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	u, err := tokens.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.ID != alice.ID || u.Email != alice.Email {
		t.Fatalf("unexpected session user: %+v", u)
	}
}

func TestTokens_EmptySecret(t *testing.T) {
	if _, err := NewTokens("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestTokens_Rejects(t *testing.T) {
	tokens, _ := NewTokens("secret", time.Hour)
	other, _ := NewTokens("other-secret", time.Hour)
	forged, _ := other.Issue(alice)

	expired, _ := NewTokens("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _ := expired.Issue(alice)

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": alice.ID, "iss": issuer, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	foreignIssuer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": alice.ID, "iss": "someone-else", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": issuer, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	tests := map[string]string{
		"garbage":        "not-a-token",
		"wrong secret":   forged,
		"expired":        stale,
		"alg none":       none,
		"foreign issuer": foreignIssuer,
		"no subject":     noSubject,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := tokens.Parse(raw); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestProvider(t *testing.T) {
	var p Provider

	u, err := p.CurrentUser(context.Background())
	if err != nil || u != nil {
		t.Fatalf("expected no user, got %+v, %v", u, err)
	}

	ctx := WithUser(context.Background(), &ports.SessionUser{ID: "user-1"})
	u, err = p.CurrentUser(ctx)
	if err != nil || u == nil || u.ID != "user-1" {
		t.Fatalf("expected user-1, got %+v, %v", u, err)
	}
}
