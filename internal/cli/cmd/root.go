package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tally/internal/config"
)

const (
	ExitOK       = 0
	ExitCLIError = 1
	ExitIOError  = 2
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Single-line progress bars for the terminal",
		Long:          "Tally renders a continuously updating progress line from a {tag} widget template: counters, gauges, spinners, rates and time estimates, arranged however the template says. The demo subcommand drives one bar so templates can be tried out; showcase runs several side by side.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// behave like `tally demo` when invoked bare
			return runDemo(cmd)
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().IntP("width", "w", 0, "Display width in cells; 0 auto-detects the terminal")
	root.PersistentFlags().Duration("refresh", 500*time.Millisecond, "Minimum interval between redraws")
	root.PersistentFlags().StringP("template", "t", "", "Widget template; empty uses the built-in default")

	// Also bind demo-specific flags on root, so a bare `tally` works.
	bindDemoFlags(root.Flags())

	root.AddCommand(newDemoCmd())
	root.AddCommand(newTagsCmd())
	root.AddCommand(newShowcaseCmd())
	root.AddCommand(newCompletionCmd())

	_ = config.Init(root)

	return root
}

func bindDemoFlags(fs *pflag.FlagSet) {
	fs.IntP("total", "n", 100, "Number of steps to run the bar through")
	fs.Bool("unbounded", false, "Run without a known maximum")
	fs.Duration("interval", 50*time.Millisecond, "Delay between steps")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

// Helpers: flag > env/config > default, through the viper bindings.
func configuredInt(cmd *cobra.Command, name string) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return viper.GetInt(name)
}

func configuredString(cmd *cobra.Command, name string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return viper.GetString(name)
}

func configuredDuration(cmd *cobra.Command, name string) time.Duration {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetDuration(name)
		return v
	}
	return viper.GetDuration(name)
}
