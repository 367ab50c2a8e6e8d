// Command server runs the dealership API.
//
//	@title						Dealership API
//	@version					1.0
//	@description				Inventory, leads, expenses and public dealer sites.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/api"
	"github.com/dealerhub/dealership-system/internal/api/handler"
	"github.com/dealerhub/dealership-system/internal/core/abuse"
	"github.com/dealerhub/dealership-system/internal/core/access"
	"github.com/dealerhub/dealership-system/internal/core/service"
	mongodb "github.com/dealerhub/dealership-system/internal/infrastructure/db/mongo"
	redisdb "github.com/dealerhub/dealership-system/internal/infrastructure/db/redis"
	"github.com/dealerhub/dealership-system/internal/infrastructure/notify"
	"github.com/dealerhub/dealership-system/internal/infrastructure/session"
	"github.com/dealerhub/dealership-system/internal/infrastructure/storage"
	"github.com/dealerhub/dealership-system/internal/pkg/config"
	"github.com/dealerhub/dealership-system/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "dealership-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	repos := mongodb.NewRepositories(db)
	if err := repos.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	images, err := storage.NewImageStore(ctx, storage.Config{
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		Endpoint:      cfg.Storage.Endpoint,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return err
	}
	if !images.Enabled() {
		log.Warn().Msg("IMAGE_BUCKET not set, vehicle images will not be removed from storage")
	}

	// --- Notifications ---
	mailer := notify.NewEmailClient(notify.EmailConfig{
		APIKey: cfg.Email.APIKey,
		URL:    cfg.Email.APIURL,
		From:   cfg.Email.From,
	})
	if !mailer.Enabled() {
		log.Warn().Msg("EMAIL_API_KEY not set, dealer notifications are disabled")
	}
	dispatcher := notify.NewDispatcher(cfg.Email.Workers, mailer, logger.Component("notify"))
	// Workers outlive the signal context so Close can drain them.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher.Start(workerCtx)

	// --- Access control and abuse mitigation ---
	tokens, err := session.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	guard := access.NewGuard(
		access.NewResolver(session.Provider{}, repos.Users),
		access.DefaultPolicy(),
		logger.Component("access"),
	)
	verifier := abuse.NewVerifier(abuse.ChallengeConfig{
		Secret:    cfg.Challenge.SecretKey,
		VerifyURL: cfg.Challenge.VerifyURL,
		Timeout:   cfg.Challenge.Timeout,
	}, logger.Component("abuse"))
	gate := abuse.NewGate(verifier, abuse.Default(), cfg.Abuse.FormWindow, cfg.Abuse.FormMax)

	// --- Services ---
	services := api.Services{
		Auth:     service.NewAuthService(gate, repos.Users, repos.Dealers, tokens, logger.Component("auth")),
		Users:    service.NewUserService(guard, repos.Users, logger.Component("users")),
		Dealer:   service.NewDealerService(guard, repos.Dealers, logger.Component("dealer")),
		Vehicles: service.NewVehicleService(guard, repos.Vehicles, images, logger.Component("vehicles")),
		Leads:    service.NewLeadService(guard, repos.Leads, logger.Component("leads")),
		Sourcing: service.NewSourcingService(guard, repos.Sourcing, logger.Component("sourcing")),
		Expenses: service.NewExpenseService(guard, repos.Expenses, repos.Vehicles, logger.Component("expenses")),
		Reports:  service.NewReportService(guard, repos.Reports),
		Public: service.NewPublicService(service.PublicDeps{
			Gate:     gate,
			Dealers:  repos.Dealers,
			Vehicles: repos.Vehicles,
			Leads:    repos.Leads,
			Sourcing: repos.Sourcing,
			Dedup:    redisdb.NewSubmissionGuard(rdb, cfg.Redis.SubmissionTTL),
			Notifier: dispatcher,
		}, logger.Component("public")),
	}

	proxies, err := cfg.Abuse.ProxyNets()
	if err != nil {
		return err
	}
	e := api.NewRouter(services, api.Options{
		Logger: logger.Component("http"),
		Tokens: tokens,
		Checks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return redisdb.Ping(ctx, rdb) },
		},
		RateLimitRPS:   cfg.Abuse.APIRateRPS,
		RateLimitBurst: cfg.Abuse.APIRateBurst,
		RetryAfter:     gate.Window(),
		TrustedProxies: proxies,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	// Requests have drained; flush queued notifications before closing clients.
	dispatcher.Close()
	return nil
}
