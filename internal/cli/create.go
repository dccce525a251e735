package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCreateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Show where roles are created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e.page.GoToCreate()

			target, _ := e.history.Last()
			if base := e.v.GetString(flagConsoleURL); base != "" {
				target = strings.TrimRight(base, "/") + target
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", e.t.T("roles:createRole"), target)
			return nil
		},
	}
}
