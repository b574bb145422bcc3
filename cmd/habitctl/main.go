package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dukerupert/habitual/internal/cli"
	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/logging"
)

var CLI struct {
	DB       string `help:"SQLite database path." type:"path" env:"HABITUAL_DB_PATH" default:"habitual.db"`
	LogLevel string `help:"Log level (debug, info, warn, error)." env:"HABITUAL_LOG_LEVEL" default:"warn"`

	Migrate cli.MigrateCmd `cmd:"" help:"Apply database migrations."`
	Report  cli.ReportCmd  `cmd:"" help:"Print a user's habit dashboard."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitctl"),
		kong.Description("Administration tool for the habitual habit tracker"),
		kong.UsageOnError(),
	)

	appCtx := &cli.Context{
		DBPath: CLI.DB,
		Out:    os.Stdout,
		Logger: logging.New(os.Stderr, CLI.LogLevel),
		Clock:  day.SystemClock{},
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
