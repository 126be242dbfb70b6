package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/padelmixer/padelmixer-admin/internal/factory"
	"github.com/padelmixer/padelmixer-admin/internal/session"
	redisstorage "github.com/padelmixer/padelmixer-admin/internal/storage/redis"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() (*cobra.Command, error) {
	var err error
	cfg, err = LoadConfig()
	if err != nil {
		return nil, err
	}
	app = nil

	rootCmd := &cobra.Command{
		Use:   "padelmixer",
		Short: "Admin CLI for the PadelMixer player directory",
		Long: `padelmixer manages the PadelMixer player directory.

It signs administrators in, keeps the session between runs, and lists,
searches, creates, edits and deletes players against an in-memory demo
directory, a Redis backing, or the PadelMixer API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !needsApp(cmd) {
				return nil
			}

			var err error
			app, err = newApp(cmd)
			if err != nil {
				return err
			}
			return checkRoute(cmd, args, app.Session)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "API base URL (env: PADELMIXER_SERVER)")
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "Directory backing: memory, redis, remote (env: PADELMIXER_BACKEND)")
	flags.StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Session file path (env: PADELMIXER_SESSION_FILE)")
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis backing (env: PADELMIXER_REDIS_URL)")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "API request timeout (env: PADELMIXER_TIMEOUT)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd, nil
}

// needsApp reports whether cmd works on the session or the directory
func needsApp(cmd *cobra.Command) bool {
	return cmd.Name() != "health" && cmd.Runnable()
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newApp(cmd *cobra.Command) (*factory.App, error) {
	errOut := cmd.ErrOrStderr()

	appCfg := factory.Config{
		Logger:          newLogger(errOut),
		StorageType:     cfg.Backend,
		RemoteURL:       cfg.ServerURL,
		RequestTimeout:  cfg.Timeout,
		SessionKV:       session.NewFileKV(cfg.SessionFile),
		JWTSecret:       cfg.JWTSecret,
		SimulateLatency: cfg.SimulateLatency,
		Navigator: session.NavigatorFunc(func(path string) {
			if cfg.Verbose {
				_, _ = fmt.Fprintf(errOut, "-> %s\n", path)
			}
		}),
	}
	if cfg.Backend == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		appCfg.RedisConfig = &redisCfg
	}
	return factory.New(appCfg)
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, err := NewRootCmd()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		NewOutput(cfg.Output, os.Stdout, os.Stderr).PrintError(err)
		return 1
	}
	return 0
}
