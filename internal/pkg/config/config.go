package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Challenge ChallengeConfig
	Email     EmailConfig
	Abuse     AbuseConfig
	Storage   StorageConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=dealership"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
	// SubmissionTTL is how long an accepted public submission blocks identical ones.
	SubmissionTTL time.Duration `env:"SUBMISSION_TTL, default=10m"`
}

// ChallengeConfig configures bot challenge verification. An empty secret
// disables verification.
type ChallengeConfig struct {
	SecretKey string        `env:"CHALLENGE_SECRET_KEY"`
	VerifyURL string        `env:"CHALLENGE_VERIFY_URL, default=https://challenges.cloudflare.com/turnstile/v0/siteverify"`
	Timeout   time.Duration `env:"CHALLENGE_TIMEOUT,    default=5s"`
}

// EmailConfig configures notification emails. An empty API key disables sending.
type EmailConfig struct {
	APIKey  string `env:"EMAIL_API_KEY"`
	APIURL  string `env:"EMAIL_API_URL, default=https://api.resend.com/emails"`
	From    string `env:"EMAIL_FROM,    default=notifications@dealerhub.example"`
	Workers int    `env:"NOTIFY_WORKERS, default=4"`
}

type AbuseConfig struct {
	FormWindow   time.Duration `env:"PUBLIC_FORM_WINDOW, default=60s"`
	FormMax      int           `env:"PUBLIC_FORM_MAX,    default=5"`
	APIRateRPS   float64       `env:"API_RATE_LIMIT_RPS, default=20"`
	APIRateBurst int           `env:"API_RATE_LIMIT_BURST, default=40"`
	// TrustedProxies lists the CIDRs or IPs of reverse proxies whose
	// X-Forwarded-For is believed. Empty means clients connect directly.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// ProxyNets parses TrustedProxies. A bare IP is a single-address range.
func (a AbuseConfig) ProxyNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(a.TrustedProxies))
	for _, raw := range a.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: invalid address %q", raw)
			}
			bits := 8 * net.IPv6len
			if ip4 := ip.To4(); ip4 != nil {
				ip, bits = ip4, 8*net.IPv4len
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

// StorageConfig locates vehicle images. An empty bucket disables cleanup.
type StorageConfig struct {
	Bucket        string `env:"IMAGE_BUCKET"`
	Region        string `env:"AWS_REGION,        default=us-east-1"`
	Endpoint      string `env:"S3_ENDPOINT"`
	PublicBaseURL string `env:"IMAGE_PUBLIC_BASE_URL"`
}

// IsDevelopment reports whether the service runs locally.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Abuse.FormWindow <= 0 {
		errs = append(errs, errors.New("PUBLIC_FORM_WINDOW must be positive"))
	}
	if c.Abuse.FormMax <= 0 {
		errs = append(errs, errors.New("PUBLIC_FORM_MAX must be positive"))
	}
	if _, err := c.Abuse.ProxyNets(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
