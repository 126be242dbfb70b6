package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/padelmixer/padelmixer-admin/internal/dependencies/clock"
	"github.com/padelmixer/padelmixer-admin/internal/dependencies/random"
	"github.com/padelmixer/padelmixer-admin/internal/services/directory"
	"github.com/padelmixer/padelmixer-admin/internal/session"
	"github.com/padelmixer/padelmixer-admin/internal/storage"
	"github.com/padelmixer/padelmixer-admin/internal/storage/memory"
	redisstorage "github.com/padelmixer/padelmixer-admin/internal/storage/redis"
	"github.com/padelmixer/padelmixer-admin/internal/storage/remote"
	"github.com/padelmixer/padelmixer-admin/internal/transport"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeRemote = "remote"
)

// seedTimeout bounds the initial redis seed
const seedTimeout = 5 * time.Second

// App contains all wired application components
type App struct {
	// Storage is the directory backing selected by Config.StorageType
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Client is the API transport. Only set for the remote backing.
	Client *transport.Client

	// Tokens and Table are only set for local backings, which sign in in-process
	Tokens *session.TokenIssuer
	Table  *session.TableAuthenticator

	// Services
	Authenticator session.Authenticator
	Session       *session.Store
	Directory     *directory.Service

	closers []io.Closer
}

// Close releases backing connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger

	// StorageType selects the directory backing ("memory", "redis" or "remote")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RemoteURL is the API base URL, e.g. http://localhost:8080/api (required if StorageType is "remote")
	RemoteURL string
	// RequestTimeout bounds each API call. Zero means transport.DefaultTimeout.
	RequestTimeout time.Duration

	// SessionKV persists the session between runs (optional)
	// If nil, the session lives in memory only
	SessionKV session.KeyValue
	// Navigator receives the login route after logout (optional)
	Navigator session.Navigator

	// JWTSecret signs locally issued tokens. If empty, a random secret is
	// generated, so tokens do not outlive the process.
	JWTSecret string
	// TokenTTL is the lifetime of locally issued tokens. Zero means session.DefaultTokenTTL.
	TokenTTL time.Duration

	// SimulateLatency delays local sign-in and directory calls like a real backend would
	SimulateLatency bool
}

// deps are the injectable externals every App is built from
type deps struct {
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
	// bcryptCost overrides the table authenticator cost, zero means default
	bcryptCost int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return build(cfg, deps{
		clock:  clock.New(),
		random: random.New(),
		logger: logger,
	})
}

func build(cfg Config, d deps) (*App, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	kv := cfg.SessionKV
	if kv == nil {
		kv = session.NewMemoryKV()
	}

	app := &App{Clock: d.clock, Random: d.random}
	sessionCfg := session.Config{Navigator: cfg.Navigator, Logger: d.logger}

	switch storageType {
	case StorageTypeMemory, StorageTypeRedis:
		if err := app.wireLocalAuth(cfg, d); err != nil {
			return nil, err
		}
		app.Session = session.New(kv, app.Authenticator, d.clock, sessionCfg)

		store, err := app.localStorage(storageType, cfg, d)
		if err != nil {
			return nil, err
		}
		app.Storage = store

	case StorageTypeRemote:
		if cfg.RemoteURL == "" {
			return nil, errors.New("RemoteURL required when StorageType is remote")
		}
		client := transport.NewClient(cfg.RemoteURL, cfg.RequestTimeout)
		app.Client = client
		app.Authenticator = session.NewRemoteAuthenticator(client)
		app.Session = session.New(kv, app.Authenticator, d.clock, sessionCfg)

		// The store both supplies the bearer token and ends the session on 401
		client.Use(
			transport.BearerAuth(app.Session),
			transport.ClassifyErrors(app.Session, d.logger),
		)
		app.Storage = remote.New(client)

	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'remote'", storageType)
	}

	app.Directory = directory.New(app.Storage, d.logger)
	return app, nil
}

func (a *App) wireLocalAuth(cfg Config, d deps) error {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = d.random.String(32, random.Alphanumeric)
		d.logger.Info("no JWT secret configured, tokens are only valid for this process")
	}

	var latency time.Duration
	if cfg.SimulateLatency {
		latency = session.DefaultLatency
	}

	a.Tokens = session.NewTokenIssuer([]byte(secret), cfg.TokenTTL, d.clock)
	table, err := session.NewTableAuthenticator(a.Tokens, d.clock, session.TableConfig{
		Latency:    latency,
		BcryptCost: d.bcryptCost,
	})
	if err != nil {
		return fmt.Errorf("build authenticator: %w", err)
	}
	a.Table = table
	a.Authenticator = table
	return nil
}

func (a *App) localStorage(storageType string, cfg Config, d deps) (storage.Storage, error) {
	if storageType == StorageTypeMemory {
		var latency, jitter time.Duration
		if cfg.SimulateLatency {
			latency, jitter = memory.DefaultLatency, memory.DefaultLatency/2
		}
		return memory.NewSeeded(d.clock, d.random, latency, jitter), nil
	}

	if cfg.RedisConfig == nil {
		return nil, errors.New("RedisConfig required when StorageType is redis")
	}
	store, err := redisstorage.New(*cfg.RedisConfig, d.clock)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.closers = append(a.closers, store)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()
	seeded, err := store.SeedIfEmpty(ctx, storage.SeedPlayers(), storage.SeedDependencies())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("seed redis: %w", err)
	}
	if seeded {
		d.logger.Info("seeded empty redis directory", slog.Int("players", len(storage.SeedPlayers())))
	}
	return store, nil
}
