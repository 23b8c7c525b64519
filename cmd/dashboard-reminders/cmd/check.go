package cmd

import (
	"errors"
	"fmt"

	"dashboard-reminders/internal/app"
	"dashboard-reminders/internal/core/logger"

	"github.com/spf13/cobra"
)

// errCheckFailed makes check exit non-zero when a reminder could not be resolved.
var errCheckFailed = errors.New("some reminders could not be resolved")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Resolve every reminder once and print whether its banner shows.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := build(cmd.Context())
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer a.Close()

		results := a.Check(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), app.RenderCheck(results))

		if app.Failed(results) {
			return errCheckFailed
		}
		return nil
	},
}
