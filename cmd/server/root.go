package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/code-vault/internal/config"
	"github.com/sakif/code-vault/internal/server"
)

// serveFlags are the command-line overrides. A flag only replaces the
// environment value when it was set explicitly.
type serveFlags struct {
	envFile  string
	port     int
	store    string
	dbPath   string
	seedFile string
	logLevel string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "codevault",
		Short: "Store, browse and favorite code snippets",
		Long: `codevault serves a small snippet manager: a home list with search and
language filters, an add/edit form, and a detail view, plus a JSON API over
the same snippets. Everything lives in memory for the life of the process.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}

			// === LOGGING ===
			// Text handler for humans; LOG_LEVEL (or --log-level) picks the floor.
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: cfg.LogLevel,
			}))

			srv, err := server.New(cfg, logger)
			if err != nil {
				logger.Error("failed to create server", slog.String("error", err.Error()))
				return err
			}
			// Start blocks until the server is shut down (Ctrl+C or SIGTERM)
			// and closes the store on the way out.
			if err := srv.Start(); err != nil {
				logger.Error("server error", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.IntVar(&f.port, "port", 0, "listen port (overrides PORT)")
	flags.StringVar(&f.store, "store", "", "record store backend: memory or sqlite (overrides STORE)")
	flags.StringVar(&f.dbPath, "db-path", "", "SQLite DSN (overrides DB_PATH)")
	flags.StringVar(&f.seedFile, "seed", "", "YAML seed file (overrides SEED_FILE)")
	flags.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	return cmd
}

// resolveConfig layers explicitly set flags over the environment.
func resolveConfig(cmd *cobra.Command, f serveFlags) (config.Config, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = f.port
	}
	if flags.Changed("store") {
		cfg.Store = f.store
	}
	if flags.Changed("db-path") {
		cfg.DBPath = f.dbPath
	}
	if flags.Changed("seed") {
		cfg.SeedFile = f.seedFile
	}
	if flags.Changed("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(f.logLevel)); err != nil {
			return config.Config{}, fmt.Errorf("invalid --log-level %q", f.logLevel)
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Execute runs the command tree.
func Execute() error {
	return newRootCmd().Execute()
}
