package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the flags shared by every sub-command
type rootOptions struct {
	Path     string
	LogLevel string
}

// migratorFunc runs one operation against an open Migrator
type migratorFunc func(m *migration.Migrator, log *zap.Logger) error

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the CRM database schema",
		Long: `Apply or revert the versioned SQL migrations in the migrations directory.

Connection settings come from config.toml and CRM_DATABASE_* environment variables.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Path, "path", "", "migrations directory (default: nearest ./migrations)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")

	cmd.AddCommand(
		newUpCommand(opts),
		newDownCommand(opts),
		newStepsCommand(opts),
		newVersionCommand(opts),
		newForceCommand(opts),
	)
	return cmd
}

func newUpCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(opts, func(m *migration.Migrator, _ *zap.Logger) error {
				return m.Up()
			})
		},
	}
}

func newDownCommand(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert every applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("down drops every table; re-run with --yes to confirm")
			}
			return withMigrator(opts, func(m *migration.Migrator, _ *zap.Logger) error {
				return m.Down()
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm reverting all migrations")
	return cmd
}

func newStepsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "steps <n>",
		Short: "Apply n migrations, or revert when n is negative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n == 0 {
				return fmt.Errorf("steps must be a non-zero integer, got %q", args[0])
			}
			return withMigrator(opts, func(m *migration.Migrator, _ *zap.Logger) error {
				return m.Steps(n)
			})
		},
	}
}

func newVersionCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(opts, func(m *migration.Migrator, _ *zap.Logger) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
				return nil
			})
		},
	}
}

func newForceCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Mark version as applied without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil || version < -1 {
				return fmt.Errorf("version must be an integer >= -1, got %q", args[0])
			}
			return withMigrator(opts, func(m *migration.Migrator, _ *zap.Logger) error {
				return m.Force(version)
			})
		},
	}
}

// withMigrator loads the configuration, opens the database and runs fn
func withMigrator(opts *rootOptions, fn migratorFunc) error {
	log, err := logger.New(&logger.Config{
		Level:      opts.LogLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path := opts.Path
	if path == "" {
		if path, err = migration.FindDir("."); err != nil {
			return err
		}
	}
	log.Info("Using migrations", zap.String("path", path), zap.String("database", cfg.Database.DBName))

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	m, err := migration.New(db, path, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	return fn(m, log)
}
