package cmd

import (
	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newShowcaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "showcase",
		Short:         "Run several bars side by side in an interactive view",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			width := configuredInt(cmd, "width")
			if width <= 0 {
				width = lineWidth()
			}
			if err := ui.Run(cmd.Context(), width); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return nil
		},
	}
	return cmd
}
