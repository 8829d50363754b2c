package ui

import (
	"fmt"
	"strings"
)

func (m Model) viewHeader() string {
	done := 0
	for _, r := range m.rows {
		if r.done {
			done++
		}
	}
	title := m.styles.Title.Render("tally — progress bar showcase")
	sub := m.styles.Subtitle.Render(fmt.Sprintf("%s Bars: %d/%d done • q: quit", m.spinner.View(), done, len(m.rows)))
	return title + "\n" + sub
}

func (m Model) viewRows() string {
	var b strings.Builder
	for _, r := range m.rows {
		name := m.styles.RowName.Render(fmt.Sprintf("%-10s", r.name))
		line := m.styles.RowLine.Render(r.sink.line)
		if r.done {
			line = m.styles.Success.Render(r.sink.line)
		}
		b.WriteString(m.styles.Box.Render(name + line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	return m.viewHeader() + "\n\n" + m.viewRows()
}
