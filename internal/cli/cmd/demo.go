package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tally"
)

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "demo",
		Short:         "Drive a progress bar through a simulated run",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd)
		},
	}
	bindDemoFlags(cmd.Flags())
	return cmd
}

func runDemo(cmd *cobra.Command) error {
	width := configuredInt(cmd, "width")
	if width <= 0 {
		width = lineWidth()
	}
	refresh := configuredDuration(cmd, "refresh")
	template := configuredString(cmd, "template")

	total, _ := cmd.Flags().GetInt("total")
	unbounded, _ := cmd.Flags().GetBool("unbounded")
	interval, _ := cmd.Flags().GetDuration("interval")
	if total <= 0 {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("invalid --total: %d", total)}
	}

	opts := []tally.Option{
		tally.WithSize(width),
		tally.WithRefresh(refresh),
	}
	if !unbounded {
		opts = append(opts, tally.WithMaximum(float64(total)))
	}
	bar := tally.New(template, opts...)

	ctx := cmd.Context()
	if err := bar.Start(); err != nil {
		return &ExitError{Code: ExitIOError, Err: err}
	}
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			if err := bar.Finish(fmt.Sprintf("Interrupted at step %d of %d.", i, total)); err != nil {
				return &ExitError{Code: ExitIOError, Err: err}
			}
			return ctx.Err()
		case <-time.After(interval):
		}
		if err := bar.Add(1); err != nil {
			return &ExitError{Code: ExitIOError, Err: err}
		}
	}
	if err := bar.Finish(fmt.Sprintf("Done: %d steps in {timer}.", total)); err != nil {
		return &ExitError{Code: ExitIOError, Err: err}
	}
	return nil
}

// lineWidth resolves the terminal width, falling back to 80 when stdout
// is not a terminal or the size cannot be read.
func lineWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
