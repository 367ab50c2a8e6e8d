package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/api/handler"
	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
	"github.com/dealerhub/dealership-system/internal/infrastructure/session"
)

// sessionUsers answers like the real UserService guard: no session user in
// the context means ErrUnauthenticated.
type sessionUsers struct {
	calls int
}

func (s *sessionUsers) List(ctx context.Context) ([]*domain.User, error) {
	s.calls++
	u := session.FromContext(ctx)
	if u == nil {
		return nil, domain.ErrUnauthenticated
	}
	return []*domain.User{{ID: u.ID, Email: u.Email}}, nil
}

func (s *sessionUsers) Create(context.Context, ports.CreateUserInput) (*domain.User, error) {
	return nil, domain.ErrUnauthorized
}

func (s *sessionUsers) UpdateRole(context.Context, string, domain.Role) error { return nil }
func (s *sessionUsers) SetActive(context.Context, string, bool) error         { return nil }

type limitedPublic struct {
	ports.PublicService
}

func (limitedPublic) SubmitLead(context.Context, ports.PublicContext, string, ports.LeadInput) (*ports.SubmissionResult, error) {
	return nil, domain.ErrTooManyRequests
}

// fingerprintPublic records the client fingerprint of every lead submission.
type fingerprintPublic struct {
	ports.PublicService
	seen []string
}

func (p *fingerprintPublic) SubmitLead(_ context.Context, pc ports.PublicContext, _ string, _ ports.LeadInput) (*ports.SubmissionResult, error) {
	p.seen = append(p.seen, pc.Fingerprint)
	return &ports.SubmissionResult{ID: "lead-1"}, nil
}

func newTestRouter(t *testing.T, users *sessionUsers) (*session.Tokens, http.Handler) {
	t.Helper()
	tokens, err := session.NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	e := NewRouter(Services{Users: users, Public: limitedPublic{}}, Options{
		Logger:     zerolog.Nop(),
		Tokens:     tokens,
		Checks:     map[string]handler.Check{"mongodb": func(context.Context) error { return nil }},
		RetryAfter: time.Minute,
		Registerer: prometheus.NewRegistry(),
	})
	return tokens, e
}

func serve(h http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_AnonymousStaffRequestIs401(t *testing.T) {
	users := &sessionUsers{}
	_, h := newTestRouter(t, users)

	rec := serve(h, http.MethodGet, "/v1/users", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if users.calls != 1 {
		t.Fatal("anonymous requests are rejected by the service, not the router")
	}
}

func TestRouter_ForgedTokenNeverReachesService(t *testing.T) {
	users := &sessionUsers{}
	_, h := newTestRouter(t, users)

	rec := serve(h, http.MethodGet, "/v1/users", "Bearer forged", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if users.calls != 0 {
		t.Fatal("service must not run for an invalid token")
	}
}

func TestRouter_ValidTokenCarriesSession(t *testing.T) {
	users := &sessionUsers{}
	tokens, h := newTestRouter(t, users)

	raw, err := tokens.Issue(&domain.User{ID: "admin-n", Email: "admin@north.example"})
	if err != nil {
		t.Fatal(err)
	}
	rec := serve(h, http.MethodGet, "/v1/users", "Bearer "+raw, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "admin-n") {
		t.Fatalf("unexpected body: %s", rec.Body)
	}
}

func TestRouter_ForbiddenIs403(t *testing.T) {
	users := &sessionUsers{}
	tokens, h := newTestRouter(t, users)
	raw, _ := tokens.Issue(&domain.User{ID: "viewer-n"})

	rec := serve(h, http.MethodPost, "/v1/users", "Bearer "+raw, `{"email":"x@y.example"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_RateLimitedSubmission(t *testing.T) {
	_, h := newTestRouter(t, &sessionUsers{})

	rec := serve(h, http.MethodPost, "/v1/public/vehicles/pub-n1/leads", "", `{"name":"Jane","email":"jane@example.com"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("expected Retry-After header, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRouter_HealthAndUnknownRoute(t *testing.T) {
	_, h := newTestRouter(t, &sessionUsers{})

	if rec := serve(h, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/v1/nope", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route: expected 404, got %d", rec.Code)
	}
}

func TestRouter_ForwardedForDoesNotChangeFingerprint(t *testing.T) {
	_, proxies, _ := net.ParseCIDR("203.0.113.0/24")

	tests := []struct {
		name    string
		trusted []*net.IPNet
		remote  string
		want    string
	}{
		{"no trusted proxies", nil, "198.51.100.4:4000", "198.51.100.4"},
		{"peer outside trusted proxies", []*net.IPNet{proxies}, "198.51.100.4:4000", "198.51.100.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			public := &fingerprintPublic{}
			e := NewRouter(Services{Public: public}, Options{
				Logger:         zerolog.Nop(),
				Registerer:     prometheus.NewRegistry(),
				TrustedProxies: tt.trusted,
			})

			for i := 0; i < 6; i++ {
				req := httptest.NewRequest(http.MethodPost, "/v1/public/vehicles/pub-n1/leads", strings.NewReader(`{"name":"Jane","email":"jane@example.com"}`))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
				req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i))
				req.RemoteAddr = tt.remote
				rec := httptest.NewRecorder()
				e.ServeHTTP(rec, req)
				if rec.Code != http.StatusAccepted {
					t.Fatalf("request %d: expected 202, got %d: %s", i, rec.Code, rec.Body)
				}
			}

			for _, fp := range public.seen {
				if fp != tt.want {
					t.Fatalf("fingerprints = %v, want all %q", public.seen, tt.want)
				}
			}
		})
	}
}

func TestRouter_TrustedProxyForwardsClient(t *testing.T) {
	_, proxies, _ := net.ParseCIDR("203.0.113.0/24")
	public := &fingerprintPublic{}
	e := NewRouter(Services{Public: public}, Options{
		Logger:         zerolog.Nop(),
		Registerer:     prometheus.NewRegistry(),
		TrustedProxies: []*net.IPNet{proxies},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/public/vehicles/pub-n1/leads", strings.NewReader(`{"name":"Jane","email":"jane@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "192.0.2.50")
	req.RemoteAddr = "203.0.113.10:4000"
	e.ServeHTTP(httptest.NewRecorder(), req)

	if len(public.seen) != 1 || public.seen[0] != "192.0.2.50" {
		t.Fatalf("fingerprints = %v, want [192.0.2.50]", public.seen)
	}
}
