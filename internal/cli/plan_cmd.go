package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/alexanderramin/examplan/internal/views"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the generated study plan",
	}

	cmd.AddCommand(
		newPlanListCmd(app),
		newPlanTableCmd(app),
		newPlanCalendarCmd(app),
	)

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every day of the plan grouped by week or month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			today := app.Plan.Today()

			var groups []views.Group
			switch group {
			case "week":
				groups = app.Plan.Weeks(ctx)
			case "month":
				groups = views.GroupByMonth(app.Plan.Rows(ctx))
			default:
				return fmt.Errorf("invalid --group %q (expected week or month)", group)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGroups(groups, today))
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "week", "group days by week or month")
	return cmd
}

func newPlanTableCmd(app *App) *cobra.Command {
	var status filterStatusValue
	var query string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show the plan as a filterable table",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := views.Filter{Status: views.FilterStatus(status), Query: query}
			rows := app.Plan.Table(cmd.Context(), filter)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRows(rows, app.Plan.Today()))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("%d days", len(rows))))
			return nil
		},
	}

	addFilterFlags(cmd.Flags(), &status, &query)
	return cmd
}

func newPlanCalendarCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month grid of the plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ym, err := resolveMonth(app, month)
			if err != nil {
				return err
			}
			cal := app.Plan.Calendar(cmd.Context(), ym.Year, ym.Month)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCalendar(cal))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to show as YYYY-MM (default: current, or first plan month)")
	return cmd
}

// resolveMonth parses YYYY-MM. Without a value it picks the current month
// when the plan covers it and the first plan month otherwise.
func resolveMonth(app *App, s string) (views.YearMonth, error) {
	months := app.Plan.Months()
	if s == "" {
		today := app.Plan.Today()
		for _, m := range months {
			if m.Year == today.Year && m.Month == today.Month {
				return m, nil
			}
		}
		if len(months) > 0 {
			return months[0], nil
		}
		return views.YearMonth{Year: today.Year, Month: today.Month}, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return views.YearMonth{}, fmt.Errorf("invalid --month %q (expected YYYY-MM)", s)
	}
	return views.YearMonth{Year: t.Year(), Month: t.Month()}, nil
}
