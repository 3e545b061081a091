package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/alexanderramin/examplan/internal/service"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show overall and per-category progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Plan.Summary(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(s, app.Plan.Today(), len(app.Plan.Unscheduled())))
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent progress changes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be zero or positive")
			}
			events, err := app.Progress.History(cmd.Context(), limit)
			if errors.Is(err, service.ErrHistoryUnavailable) {
				return fmt.Errorf("%w (history is kept by the sqlite store only)", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(events, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of events (0 for all)")
	return cmd
}
