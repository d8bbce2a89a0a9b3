// Package main is the entry point for the capability gateway.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/telcobridge/capgate/internal/adapters/clients"
	httpadapter "github.com/telcobridge/capgate/internal/adapters/http"
	"github.com/telcobridge/capgate/internal/adapters/http/handlers"
	"github.com/telcobridge/capgate/internal/app"
	"github.com/telcobridge/capgate/internal/capability"
	"github.com/telcobridge/capgate/internal/platform/config"
	"github.com/telcobridge/capgate/internal/platform/logging"
	"github.com/telcobridge/capgate/internal/platform/telemetry"
	"github.com/telcobridge/capgate/internal/ports"
	"github.com/telcobridge/capgate/internal/resources"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the gateway.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

// registrar is one resource adapter's hookup into the operation registry.
type registrar interface {
	Register(reg *capability.Registry) error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast; a resource without a
	// base address must not start)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting gateway",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Create one instrumented client per backend resource and bind it
	// to its adapter; registration order fixes discovery order.
	authFunc := bearerAuth(cfg.Upstream.APIKey)
	registry := capability.NewRegistry()

	upstreams := []struct {
		name    string
		baseURL string
		build   func(transport capability.Transport) registrar
	}{
		{"connections", cfg.Upstream.Connections.BaseURL,
			func(t capability.Transport) registrar { return resources.NewConnections(t, logger) }},
		{"phone_numbers", cfg.Upstream.PhoneNumbers.BaseURL,
			func(t capability.Transport) registrar { return resources.NewPhoneNumbers(t, logger) }},
		{"messages", cfg.Upstream.Messages.BaseURL,
			func(t capability.Transport) registrar { return resources.NewMessages(t, logger) }},
		{"messaging_profiles", cfg.Upstream.MessagingProfiles.BaseURL,
			func(t capability.Transport) registrar { return resources.NewMessagingProfiles(t, logger) }},
		{"number_orders", cfg.Upstream.NumberOrders.BaseURL,
			func(t capability.Transport) registrar { return resources.NewNumberOrders(t, logger) }},
		{"porting_orders", cfg.Upstream.PortingOrders.BaseURL,
			func(t capability.Transport) registrar { return resources.NewPortingOrders(t, logger) }},
		{"call_control_applications", cfg.Upstream.CallControlApplications.BaseURL,
			func(t capability.Transport) registrar { return resources.NewCallControlApplications(t, logger) }},
		{"outbound_voice_profiles", cfg.Upstream.OutboundVoiceProfiles.BaseURL,
			func(t capability.Transport) registrar { return resources.NewOutboundVoiceProfiles(t, logger) }},
	}

	for _, u := range upstreams {
		client, err := clients.New(&clients.Config{
			BaseURL:     u.baseURL,
			ServiceName: u.name,
			Timeout:     cfg.Client.Timeout,
			Circuit:     cfg.Client.CircuitBreaker,
			Transport:   cfg.Client.Transport,
			AuthFunc:    authFunc,
			Logger:      logger,
		})
		if err != nil {
			return fmt.Errorf("creating %s client: %w", u.name, err)
		}

		if err := healthRegistry.Register(clients.NewHealthChecker(u.name, client)); err != nil {
			return fmt.Errorf("registering %s health check: %w", u.name, err)
		}

		if err := u.build(client).Register(registry); err != nil {
			return fmt.Errorf("registering %s operations: %w", u.name, err)
		}
	}

	logger.Info("operation registry built", slog.Int("operations", registry.Len()))

	// 7. Create invocation service (application layer)
	invocationService := app.NewInvocationService(registry, logger)

	// 8. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	capabilityHandler := handlers.NewCapabilityHandler(invocationService)

	// 9. Create HTTP server
	server := httpadapter.New(&cfg.Server, logger)

	// 10. Setup router with all middleware and routes
	routerCfg := httpadapter.RouterConfig{
		Logger:            logger,
		AppConfig:         &cfg.App,
		HealthHandler:     healthHandler,
		CapabilityHandler: capabilityHandler,
		Timeout:           httpadapter.DefaultRequestTimeout,
	}
	httpadapter.SetupRouter(server.Engine(), routerCfg)

	// 11. Start server (non-blocking)
	serverErr := server.Start()

	// 12. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// bearerAuth returns an auth injector for the shared upstream API key.
// Returns nil when no key is configured so requests go out unauthenticated.
func bearerAuth(apiKey string) func(*http.Request) {
	if apiKey == "" {
		return nil
	}

	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *httpadapter.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
