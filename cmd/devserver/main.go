package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/padelmixer/padelmixer-admin/internal/api"
	"github.com/padelmixer/padelmixer-admin/internal/factory"
	redisstorage "github.com/padelmixer/padelmixer-admin/internal/storage/redis"
)

// config is read from PADELMIXER_* environment variables
type config struct {
	Backend         string        `env:"BACKEND" envDefault:"memory"`
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	SimulateLatency bool          `env:"SIMULATE_LATENCY"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`

	HTTP  api.ServerConfig    `envPrefix:"HTTP_"`
	Redis redisstorage.Config `envPrefix:"REDIS_"`
}

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "devserver: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine
	_ = godotenv.Load()

	var cfg config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "PADELMIXER_"}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if cfg.Backend == factory.StorageTypeRemote {
		return fmt.Errorf("backend %q cannot serve the API itself", cfg.Backend)
	}

	// Clients keep their tokens across restarts, the CLI does not need a stable secret
	if cfg.JWTSecret == "" {
		logger.Warn("PADELMIXER_JWT_SECRET is not set, issued tokens are invalidated on restart")
	}

	appCfg := factory.Config{
		Logger:          logger,
		StorageType:     cfg.Backend,
		JWTSecret:       cfg.JWTSecret,
		TokenTTL:        cfg.TokenTTL,
		SimulateLatency: cfg.SimulateLatency,
	}
	if cfg.Backend == factory.StorageTypeRedis {
		appCfg.RedisConfig = &cfg.Redis
	}

	app, err := factory.New(appCfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() { _ = app.Close() }()

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Players:       app.Storage,
		Authenticator: app.Table,
		Tokens:        app.Tokens,
	})
	server := api.NewServer(router, cfg.HTTP, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("dev server started",
		slog.String("addr", server.Addr()),
		slog.String("backend", cfg.Backend),
		slog.String("api", api.PathPrefix))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	if err := server.Shutdown(context.Background()); err != nil {
		return err
	}
	logger.Info("dev server stopped")
	return nil
}
