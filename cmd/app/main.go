// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"codeberg.org/oliverandrich/scentbook/internal/config"
	"codeberg.org/oliverandrich/scentbook/internal/server"
	"codeberg.org/oliverandrich/scentbook/internal/shell"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Scentbook fragrance catalogue",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web application",
				Flags:  config.Flags(),
				Action: server.Run,
			},
			{
				Name:   "client",
				Usage:  "Fetch a CSRF token, optionally log in, and render a page from the server",
				Flags:  config.ClientFlags(),
				Action: shell.Run,
			},
			migrateCommand(),
			userCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
