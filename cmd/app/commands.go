// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"codeberg.org/oliverandrich/scentbook/internal/config"
	"codeberg.org/oliverandrich/scentbook/internal/database"
	"codeberg.org/oliverandrich/scentbook/internal/logging"
	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/repository"
	"codeberg.org/oliverandrich/scentbook/internal/services/auth"
	"github.com/urfave/cli/v3"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Flags: config.DatabaseFlags(),
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Apply pending migrations and print the schema version",
				Action: withDB(printVersion),
			},
			{
				Name:  "down",
				Usage: "Roll back the last migration",
				Action: withDB(func(ctx context.Context, cmd *cli.Command, db *sql.DB) error {
					if err := database.MigrateDown(db); err != nil {
						return err
					}
					return printVersion(ctx, cmd, db)
				}),
			},
			{
				Name:  "reset",
				Usage: "Roll back all migrations",
				Action: withDB(func(_ context.Context, _ *cli.Command, db *sql.DB) error {
					return database.MigrateReset(db)
				}),
			},
		},
	}
}

func printVersion(_ context.Context, _ *cli.Command, db *sql.DB) error {
	v, err := database.Version(db)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "schema version %d\n", v)
	return nil
}

// withDB opens the database named by --database-dsn for the duration of fn.
func withDB(fn func(context.Context, *cli.Command, *sql.DB) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		logging.Setup(os.Stderr, "info", "text")

		db, err := database.Open(cmd.String("database-dsn"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("failed to close database", "error", closeErr)
			}
		}()

		return fn(ctx, cmd, db.DB)
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage users",
		Commands: []*cli.Command{
			{
				Name:      "set-role",
				Usage:     "Change the role of a user (admin, user)",
				ArgsUsage: "<username> <role>",
				Flags:     config.Flags(),
				Action:    setRole,
			},
		},
	}
}

func setRole(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return cli.Exit("usage: app user set-role <username> <role>", 2)
	}
	username, role := cmd.Args().Get(0), models.Role(cmd.Args().Get(1))

	cfg := config.NewFromCLI(cmd)
	logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	svc, err := auth.NewService(repository.New(db), &cfg.Auth)
	if err != nil {
		return err
	}

	user, err := svc.SetRole(ctx, username, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s is now %s\n", user.Username, user.Role)
	return nil
}
