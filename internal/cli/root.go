package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/catalog"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/service"
	"github.com/spf13/cobra"
)

// skipSetup marks commands that never touch the plan or the progress store.
const skipSetup = "examplan/skip-setup"

// App holds the services and session settings used by CLI commands.
type App struct {
	Plan     service.PlanService
	Progress service.ProgressService
	Catalog  *catalog.Catalog

	// User is the signed-in user; empty means anonymous (read-only).
	User string

	// Interactive enables huh prompts when a flag is left out.
	Interactive bool

	// Now is used for relative timestamps. Defaults to time.Now.
	Now func() time.Time

	// Setup wires Plan, Progress and Catalog once flags are parsed. Nil when
	// the App is already wired, as in tests.
	Setup func(ctx context.Context, app *App, stderr io.Writer) error

	// PickConfidence asks the user for a confidence level. Defaults to a huh
	// select form.
	PickConfidence func(date civil.Date) (domain.Confidence, error)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "examplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "examplan",
		Short:         "Exam study calendar and progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil || cmd.Annotations[skipSetup] != "" {
				return nil
			}
			return app.Setup(cmd.Context(), app, cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&app.User, "user", app.User, "signed-in user (enables marking progress)")

	root.AddCommand(
		newPlanCmd(app),
		newDayCmd(app),
		newDoneCmd(app),
		newUndoCmd(app),
		newSummaryCmd(app),
		newHistoryCmd(app),
		newExportCmd(app),
		newCatalogCmd(app),
		newBoardCmd(app),
	)

	return root
}

// parseDay accepts YYYY-MM-DD or "today". An empty string means today.
func parseDay(app *App, s string) (civil.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return app.Plan.Today(), nil
	case "yesterday":
		return app.Plan.Today().AddDays(-1), nil
	case "tomorrow":
		return app.Plan.Today().AddDays(1), nil
	}
	return domain.ParseDateKey(s)
}

// explain adds a hint to errors the user can act on.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUnauthorized):
		return fmt.Errorf("%w (pass --user or set EXAMPLAN_USER)", err)
	case errors.Is(err, domain.ErrDateOutsidePlan):
		return fmt.Errorf("%w (see `examplan plan list`)", err)
	}
	return err
}
