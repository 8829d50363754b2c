package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tally"
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tags",
		Short:         "List the built-in template tags with sample output",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(cmd)
		},
	}
	return cmd
}

func runTags(cmd *cobra.Command) error {
	tagStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sampleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	// a bar mid-run, never drawn, purely to sample each widget against
	bar := tally.New("",
		tally.WithMaximum(100),
		tally.WithSize(24),
		tally.WithOutput(io.Discard),
	)
	if err := bar.Start(); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	if err := bar.Set(42); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	registry := tally.DefaultRegistry()
	out := cmd.OutOrStdout()
	for _, tag := range registry.Tags() {
		w, ok := registry.Widget(tag)
		if !ok {
			continue
		}
		sample := w.Render(bar, 16)
		fmt.Fprintf(out, "%s  %s\n",
			tagStyle.Render(fmt.Sprintf("%-14s", "{"+tag+"}")),
			sampleStyle.Render(sample))
	}
	return nil
}
