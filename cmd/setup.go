package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/slidex/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	applied, err := shared.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if len(applied) == 0 {
		r.writePlain("✓ Database %s is up to date\n", r.config.Database.Path)
	} else {
		r.writePlain("✓ Applied %s to %s: %v\n",
			shared.Pluralize(len(applied), "migration", "migrations"), r.config.Database.Path, applied)
	}
	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return nil
}

// SetupRollback reverts the most recent migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	applied, err := shared.AppliedMigrations(db)
	if err != nil {
		return err
	}
	if err := shared.RollbackMigration(db); err != nil {
		return err
	}

	r.logger.Info("rolled back migration", "version", applied[len(applied)-1])
	return r.writePlain("✓ Rolled back migration %d\n", applied[len(applied)-1])
}

// SetupConfig writes the default configuration to --path. An existing file is left untouched.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		return fmt.Errorf("%w: --path is required", shared.ErrMissingArgument)
	}

	r.logger.Info("creating config file from template", "path", path)
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("✓ Config written to %s\n", path)
	return r.writePlain("Edit [api] and [storage] base_url, then run 'slidex setup database'\n")
}
