// Package cli holds the habitctl commands.
package cli

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dukerupert/habitual/internal/database"
	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/habit"
	"github.com/dukerupert/habitual/internal/report"
	"github.com/dukerupert/habitual/internal/store"
)

// Context is passed to every command's Run method.
type Context struct {
	DBPath string
	Out    io.Writer
	Logger *slog.Logger
	Clock  day.Clock
}

func (c *Context) open() (*sql.DB, error) {
	db, err := database.Open(c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", c.DBPath, err)
	}
	return db, nil
}

type MigrateCmd struct{}

// Run applies pending migrations, which database.Open does on every open.
func (m *MigrateCmd) Run(ctx *Context) error {
	db, err := ctx.open()
	if err != nil {
		return err
	}
	defer db.Close()

	v, err := database.Version(db)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "database %s at version %d\n", ctx.DBPath, v)
	return nil
}

type ReportCmd struct {
	Email string `help:"Email of the user to report on." required:""`
	Range string `help:"Range to cover (week or month)." default:"week" enum:"week,month"`
}

func (r *ReportCmd) Run(ctx *Context) error {
	kind, err := day.ParseRangeKind(r.Range)
	if err != nil {
		return err
	}

	db, err := ctx.open()
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := store.NewUserStore(db).GetByEmail(strings.ToLower(r.Email))
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no user with email %s", r.Email)
	}

	svc := habit.NewService(store.NewHabitStore(db), ctx.Clock, ctx.Logger)
	d, err := svc.Dashboard(user.ID, kind)
	if err != nil {
		return fmt.Errorf("build dashboard: %w", err)
	}

	fmt.Fprint(ctx.Out, report.Render(d))
	return nil
}
