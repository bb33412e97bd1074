package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"spendsmart/internal/config"
	"spendsmart/internal/database"
	"spendsmart/internal/logger"
)

var migrationsDir string

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "SpendSmart database migrations",
	Long:          `Applies, rolls back and inspects the versioned SQL migrations of the SpendSmart database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withMigrator(func(m *migrate.Migrate) error {
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration up failed: %w", err)
			}
			logger.Get().Info("Migrations applied successfully")
			return nil
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down [N]",
	Short: "roll back the last N migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			steps = n
		}
		return withMigrator(func(m *migrate.Migrate) error {
			if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration down failed: %w", err)
			}
			logger.Get().Infof("Rolled back %d migration(s)", steps)
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withMigrator(func(m *migrate.Migrate) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				logger.Get().Info("No migrations applied")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "print the tables of the database with their row counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		manager, err := openManager()
		if err != nil {
			return err
		}
		defer manager.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		stats, err := manager.Stats(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database: %s\n", stats.Target)
		fmt.Fprintf(out, "Size:     %d bytes\n\n", stats.SizeBytes)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TABLE\tROWS")
		for _, t := range stats.Tables {
			fmt.Fprintf(w, "%s\t%d\n", t.Name, t.Rows)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&migrationsDir, "dir", "d", "", "sql migrations directory (overrides MIGRATIONS_PATH)")

	rootCmd.AddCommand(upCmd, downCmd, versionCmd, statusCmd)
}

func openManager() (*database.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)

	if migrationsDir != "" {
		cfg.MigrationsPath = migrationsDir
	}

	manager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return manager, nil
}

func withMigrator(fn func(m *migrate.Migrate) error) error {
	manager, err := openManager()
	if err != nil {
		return err
	}
	defer manager.Close()

	m, err := manager.NewMigrator()
	if err != nil {
		return err
	}
	defer database.CloseMigrator(m)

	return fn(m)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Get().Errorf("Migration error: %v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
