package abuse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// verifyServer records each call and answers with the given status and body.
func verifyServer(t *testing.T, status int, body string, calls *atomic.Int32, seen func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if seen != nil {
			seen(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifier_MutedWithoutSecret(t *testing.T) {
	var calls atomic.Int32
	srv := verifyServer(t, http.StatusOK, `{"success":false}`, &calls, nil)

	v := NewVerifier(ChallengeConfig{VerifyURL: srv.URL}, zerolog.Nop())
	if v.Enabled() {
		t.Fatal("verifier should be disabled without a secret")
	}
	if err := v.Verify(context.Background(), "any-token"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no outbound calls, got %d", calls.Load())
	}
}

func TestVerifier_MutedWithoutToken(t *testing.T) {
	var calls atomic.Int32
	srv := verifyServer(t, http.StatusOK, `{"success":false}`, &calls, nil)

	v := NewVerifier(ChallengeConfig{Secret: "s3cret", VerifyURL: srv.URL}, zerolog.Nop())
	if err := v.Verify(context.Background(), ""); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no outbound calls, got %d", calls.Load())
	}
}

func TestVerifier_Success(t *testing.T) {
	var calls atomic.Int32
	var gotSecret, gotResponse, gotContentType string
	srv := verifyServer(t, http.StatusOK, `{"success":true}`, &calls, func(r *http.Request) {
		_ = r.ParseForm()
		gotSecret = r.PostForm.Get("secret")
		gotResponse = r.PostForm.Get("response")
		gotContentType = r.Header.Get("Content-Type")
	})

	v := NewVerifier(ChallengeConfig{Secret: "s3cret", VerifyURL: srv.URL}, zerolog.Nop())
	if err := v.Verify(context.Background(), "tok"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one call, got %d", calls.Load())
	}
	if gotSecret != "s3cret" || gotResponse != "tok" {
		t.Errorf("unexpected form: secret=%q response=%q", gotSecret, gotResponse)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("unexpected content type %q", gotContentType)
	}
}

func TestVerifier_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"rejected token", http.StatusOK, `{"success":false,"error-codes":["invalid-input-response"]}`},
		{"server error", http.StatusInternalServerError, `oops`},
		{"malformed body", http.StatusOK, `not json`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := verifyServer(t, tc.status, tc.body, &calls, nil)

			v := NewVerifier(ChallengeConfig{Secret: "s3cret", VerifyURL: srv.URL}, zerolog.Nop())
			err := v.Verify(context.Background(), "tok")
			if !errors.Is(err, domain.ErrCaptchaFailed) {
				t.Fatalf("expected ErrCaptchaFailed, got %v", err)
			}
			if calls.Load() != 1 {
				t.Fatalf("expected exactly one call (no retry), got %d", calls.Load())
			}
		})
	}
}

func TestVerifier_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	v := NewVerifier(ChallengeConfig{Secret: "s3cret", VerifyURL: srv.URL, Timeout: 50 * time.Millisecond}, zerolog.Nop())
	start := time.Now()
	err := v.Verify(context.Background(), "tok")
	if !errors.Is(err, domain.ErrCaptchaFailed) {
		t.Fatalf("expected ErrCaptchaFailed, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("verification was not bounded: took %v", elapsed)
	}
}

func TestVerifier_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	v := NewVerifier(ChallengeConfig{Secret: "s3cret", VerifyURL: url}, zerolog.Nop())
	if err := v.Verify(context.Background(), "tok"); !errors.Is(err, domain.ErrCaptchaFailed) {
		t.Fatalf("expected ErrCaptchaFailed, got %v", err)
	}
}
