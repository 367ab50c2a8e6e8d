// Package notify delivers best-effort email notifications about public
// submissions. Delivery never blocks or fails the request that triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

const (
	DefaultEmailURL     = "https://api.resend.com/emails"
	defaultEmailTimeout = 10 * time.Second
)

// ErrEmailDisabled is returned by Send when no API key is configured.
var ErrEmailDisabled = errors.New("email delivery disabled")

// Sender delivers a single notification.
type Sender interface {
	Send(ctx context.Context, n ports.Notification) error
}

type EmailConfig struct {
	APIKey  string
	URL     string
	From    string
	Timeout time.Duration
}

// EmailClient posts messages to a transactional email HTTP API.
type EmailClient struct {
	apiKey string
	url    string
	from   string
	client *http.Client
}

func NewEmailClient(cfg EmailConfig) *EmailClient {
	if cfg.URL == "" {
		cfg.URL = DefaultEmailURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultEmailTimeout
	}
	return &EmailClient{
		apiKey: cfg.APIKey,
		url:    cfg.URL,
		from:   cfg.From,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Enabled reports whether an API key is configured.
func (c *EmailClient) Enabled() bool { return c.apiKey != "" }

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send makes one API call. Failures wrap domain.ErrDependencyUnavailable.
func (c *EmailClient) Send(ctx context.Context, n ports.Notification) error {
	if c.apiKey == "" {
		return ErrEmailDisabled
	}

	body, err := json.Marshal(emailRequest{From: c.from, To: []string{n.To}, Subject: n.Subject, Text: n.Body})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: email: %v", domain.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: email: status %d", domain.ErrDependencyUnavailable, resp.StatusCode)
	}
	return nil
}
