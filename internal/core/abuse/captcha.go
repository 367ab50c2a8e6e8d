package abuse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/pkg/metrics"
)

const (
	DefaultVerifyURL     = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	DefaultVerifyTimeout = 5 * time.Second
)

// ChallengeConfig is resolved once at startup. An empty Secret mutes verification.
type ChallengeConfig struct {
	Secret    string
	VerifyURL string
	Timeout   time.Duration
}

// Verifier checks bot challenge tokens against the remote verification service.
type Verifier struct {
	secret string
	url    string
	client *http.Client
	log    zerolog.Logger
}

// NewVerifier builds a Verifier. When cfg.Secret is empty every token is
// accepted; this keeps public forms usable where the challenge service is not
// provisioned and leaves them without bot protection, so it is logged loudly.
func NewVerifier(cfg ChallengeConfig, log zerolog.Logger) *Verifier {
	if cfg.VerifyURL == "" {
		cfg.VerifyURL = DefaultVerifyURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultVerifyTimeout
	}
	if cfg.Secret == "" {
		log.Warn().Msg("CHALLENGE_SECRET_KEY not set: bot challenge verification is disabled for public forms")
	}
	return &Verifier{
		secret: cfg.Secret,
		url:    cfg.VerifyURL,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// Enabled reports whether tokens are actually checked.
func (v *Verifier) Enabled() bool { return v.secret != "" }

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify returns nil when verification is muted or no token was supplied.
// Otherwise it makes exactly one call to the verification service and fails
// with domain.ErrCaptchaFailed if the call errors or reports success=false.
func (v *Verifier) Verify(ctx context.Context, token string) error {
	if v.secret == "" || token == "" {
		return nil
	}

	start := time.Now()
	defer func() { metrics.CaptchaVerifyDuration.Observe(time.Since(start).Seconds()) }()

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrCaptchaFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		v.log.Warn().Err(err).Msg("challenge verification call failed")
		return fmt.Errorf("%w: %v", domain.ErrCaptchaFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		v.log.Warn().Int("status", resp.StatusCode).Msg("challenge verification returned non-2xx")
		return fmt.Errorf("%w: status %d", domain.ErrCaptchaFailed, resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrCaptchaFailed, err)
	}
	if !body.Success {
		v.log.Debug().Strs("error_codes", body.ErrorCodes).Msg("challenge token rejected")
		return domain.ErrCaptchaFailed
	}
	return nil
}
