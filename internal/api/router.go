package api

import (
	"net"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/dealerhub/dealership-system/docs"
	"github.com/dealerhub/dealership-system/internal/api/handler"
	"github.com/dealerhub/dealership-system/internal/api/middleware"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// Services are the core ports the HTTP layer dispatches to.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Dealer   ports.DealerService
	Vehicles ports.VehicleService
	Leads    ports.LeadService
	Sourcing ports.SourcingService
	Expenses ports.ExpenseService
	Reports  ports.ReportService
	Public   ports.PublicService
}

// Options tune the router.
type Options struct {
	Logger zerolog.Logger
	Tokens middleware.TokenParser
	// Checks back the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
	// RateLimitRPS and RateLimitBurst configure the coarse per-client throttle.
	RateLimitRPS   float64
	RateLimitBurst int
	// RetryAfter is advertised on 429 responses.
	RetryAfter time.Duration
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	// TrustedProxies are the ranges allowed to set X-Forwarded-For. Empty
	// means the peer address is the client.
	TrustedProxies []*net.IPNet
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = middleware.ClientIP(opts.TrustedProxies)
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger, opts.RetryAfter)

	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 "http",
		Registerer:                opts.Registerer,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Throttle(opts.RateLimitRPS, opts.RateLimitBurst))
	e.Use(middleware.Session(opts.Tokens))

	// --- Health probes and tooling (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/login", authHandler.Login)

	// --- Public site ---
	publicHandler := handler.NewPublicHandler(svc.Public)
	pub := v1.Group("/public")
	pub.GET("/dealers/:slug/vehicles", publicHandler.ListVehicles)
	pub.POST("/dealers/:slug/sell-my-car", publicHandler.SubmitSellMyCar)
	pub.POST("/dealers/:slug/sourcing-requests", publicHandler.SubmitSourcing)
	pub.GET("/vehicles/:id", publicHandler.GetVehicle)
	pub.POST("/vehicles/:id/leads", publicHandler.SubmitLead)

	// --- Staff routes. Role and tenant checks happen in the services. ---
	userHandler := handler.NewUserHandler(svc.Users)
	v1.GET("/users", userHandler.List)
	v1.POST("/users", userHandler.Create)
	v1.PATCH("/users/:id/role", userHandler.UpdateRole)
	v1.PATCH("/users/:id/active", userHandler.SetActive)

	dealerHandler := handler.NewDealerHandler(svc.Dealer)
	v1.GET("/dealer/settings", dealerHandler.GetSettings)
	v1.PUT("/dealer/settings", dealerHandler.UpdateSettings)

	vehicleHandler := handler.NewVehicleHandler(svc.Vehicles)
	v1.GET("/vehicles", vehicleHandler.List)
	v1.POST("/vehicles", vehicleHandler.Create)
	v1.GET("/vehicles/:id", vehicleHandler.Get)
	v1.PUT("/vehicles/:id", vehicleHandler.Update)
	v1.PATCH("/vehicles/:id/status", vehicleHandler.SetStatus)
	v1.DELETE("/vehicles/:id", vehicleHandler.Delete)

	leadHandler := handler.NewLeadHandler(svc.Leads, svc.Sourcing)
	v1.GET("/leads", leadHandler.List)
	v1.GET("/leads/:id", leadHandler.Get)
	v1.PATCH("/leads/:id/status", leadHandler.UpdateStatus)
	v1.DELETE("/leads/:id", leadHandler.Delete)
	v1.GET("/sourcing-requests", leadHandler.ListSourcing)
	v1.PATCH("/sourcing-requests/:id/status", leadHandler.UpdateSourcingStatus)

	expenseHandler := handler.NewExpenseHandler(svc.Expenses)
	v1.GET("/expenses", expenseHandler.List)
	v1.POST("/expenses", expenseHandler.Create)
	v1.PUT("/expenses/:id", expenseHandler.Update)
	v1.DELETE("/expenses/:id", expenseHandler.Delete)

	reportHandler := handler.NewReportHandler(svc.Reports)
	v1.GET("/reports/summary", reportHandler.Summary)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Status >= 400:
				ev = log.Warn()
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
