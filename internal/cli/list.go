package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/realmadmin/internal/console/table"
)

func newListCommand(e *env) *cobra.Command {
	var params table.Params

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List or search realm roles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := e.page.Table().Load(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("%s %w", e.t.T("roles:loadError"), err)
			}

			out := cmd.OutOrStdout()
			switch {
			case view.Empty:
				fmt.Fprintln(out, e.t.T(view.EmptyState.MessageKey))
				fmt.Fprintln(out, e.t.T(view.EmptyState.InstructionsKey))
				return nil
			case view.NoResults:
				fmt.Fprintln(out, e.t.T("roles:noSearchResults"))
				return nil
			}

			renderTable(out, e.t, view)

			if view.HasNext {
				next := view.Params.Next()
				fmt.Fprintf(out, "%s: --first %d --max %d\n", e.t.T("common:next"), next.First, next.Max)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&params.First, "first", 0, "index of the first role")
	cmd.Flags().IntVar(&params.Max, "max", table.DefaultPageSize, "roles per page")
	cmd.Flags().StringVar(&params.Search, "search", "", "filter roles by name")

	return cmd
}
