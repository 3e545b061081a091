package cli

import (
	"fmt"

	"github.com/alexanderramin/examplan/internal/export"
	"github.com/alexanderramin/examplan/internal/views"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		format = formatValue(export.FormatCSV)
		out    string
		status filterStatusValue
		query  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the plan table with progress to a CSV or JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = "examplan." + string(format)
			}
			rows := app.Plan.Table(cmd.Context(), views.Filter{Status: views.FilterStatus(status), Query: query})
			if err := export.ToFile(out, export.Format(format), rows, app.now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d days to %s\n", len(rows), out)
			return nil
		},
	}

	cmd.Flags().Var(&format, "format", "output format")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: examplan.<format>)")
	addFilterFlags(cmd.Flags(), &status, &query)
	return cmd
}
