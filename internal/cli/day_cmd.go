package cli

import (
	"fmt"

	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "day [DATE]",
		Short: "Show one day of the plan (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			date, err := parseDay(app, arg)
			if err != nil {
				return err
			}
			row, err := app.Plan.Day(cmd.Context(), date)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(row, app.Plan.Today()))
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	var confidence confidenceValue

	cmd := &cobra.Command{
		Use:   "done DATE",
		Short: "Mark a day complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := parseDay(app, args[0])
			if err != nil {
				return err
			}

			conf := domain.Confidence(confidence)
			if !cmd.Flags().Changed("confidence") {
				conf = domain.ConfidenceMedium
				if app.Interactive {
					pick := app.PickConfidence
					if pick == nil {
						pick = pickConfidence
					}
					if conf, err = pick(date); err != nil {
						return err
					}
				}
			}

			stop := savingSpinner(app, cmd)
			row, err := app.Progress.Complete(ctx, date, conf)
			stop()
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(date.String()),
				row.Item.Title, formatter.ConfidenceBadge(conf))
			return nil
		},
	}

	cmd.Flags().Var(&confidence, "confidence", "how well the day went (prompted when interactive)")
	return cmd
}

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo DATE",
		Short: "Mark a day not completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDay(app, args[0])
			if err != nil {
				return err
			}
			stop := savingSpinner(app, cmd)
			row, err := app.Progress.Uncomplete(cmd.Context(), date)
			stop()
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s\n",
				formatter.StyleYellow.Render("↺"), formatter.Bold(date.String()),
				row.Item.Title, formatter.StatusBadge(row.Status))
			return nil
		},
	}
}

// savingSpinner animates on stderr while a save is in flight. Only
// interactive sessions get one.
func savingSpinner(app *App, cmd *cobra.Command) func() {
	if !app.Interactive {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), "Saving progress…")
}
