package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run launches the showcase with bars sized to the given width.
func Run(ctx context.Context, width int) error {
	m := NewModel(ctx, width)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
