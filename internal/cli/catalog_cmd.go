package cli

import (
	"fmt"

	"github.com/alexanderramin/examplan/internal/catalog"
	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect syllabus catalogs",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogValidateCmd(),
	)

	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the topics of the active catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Catalog == nil {
				return fmt.Errorf("no catalog loaded")
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(app.Catalog))
			return nil
		},
	}
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "validate [PATH]",
		Short:       "Validate a catalog file (default: the built-in catalog)",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cat *catalog.Catalog
				err error
			)
			source := "built-in catalog"
			if len(args) == 1 {
				source = args[0]
				cat, err = catalog.LoadFile(args[0])
			} else {
				cat, err = catalog.Builtin()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid: %d topics, %d units\n",
				formatter.StyleGreen.Render("✔"), source, cat.Len(), cat.TotalUnits())
			return nil
		},
	}
}
