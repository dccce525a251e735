package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errDeleteFailed = errors.New("delete failed")

func newDeleteCommand(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <role-id>",
		Short: "Delete a realm role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			role, err := e.client.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			e.page.OnDeleteRow(*role)

			if !yes {
				dialog := e.page.Dialog()
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, e.t.T(dialog.TitleKey))
				fmt.Fprintf(out, "%s [%s/%s] ", dialog.Message, e.t.T("common:yes"), e.t.T("common:no"))

				if !confirmed(cmd, e.t.T("common:yes")) {
					return e.page.Cancel()
				}
			}

			if err := e.page.Confirm(ctx); err != nil {
				return err
			}
			if e.sink.failed {
				return errDeleteFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirmed reads one line and accepts y, yes or the translated yes.
func confirmed(cmd *cobra.Command, yes string) bool {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes" || answer == strings.ToLower(yes)
}
