package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const tickEvery = 80 * time.Millisecond

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	rows []*rowState
	err  error

	// UI
	width, height int
	styles        Styles
	spinner       spinner.Model
}

func NewModel(ctx context.Context, width int) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sty.Spinner

	// leave room for the name column and box padding
	barWidth := width - 14
	if barWidth < 20 {
		barWidth = 20
	}

	rows := []*rowState{
		newRowState("copying",
			"{data} of {datamax} {bar} {bps}/s ETA {eta}",
			48*1024*1024, 1536*1024,
			"Copied {datamax} in {timer}.", barWidth),
		newRowState("steps",
			"", // built-in default template
			500, 7,
			"Completed 500 steps in {timer}.", barWidth),
		newRowState("staging",
			"{relpie} {percent}% {gauge} {autoeta} left",
			100, 1,
			"Staged everything in {timer}.", barWidth),
		newRowState("polling",
			"{spin} polled {count} endpoints in {autotimer}",
			0, 3,
			"Polled {count} endpoints.", barWidth),
	}
	for _, r := range rows {
		_ = r.bar.Start()
	}

	return Model{
		ctx:     c,
		cancel:  cancel,
		rows:    rows,
		styles:  sty,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			m.finishAll()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tickMsg:
		select {
		case <-m.ctx.Done():
			m.finishAll()
			return m, tea.Quit
		default:
		}
		for _, r := range m.rows {
			if _, err := r.advance(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		if m.boundedDone() {
			m.finishAll()
			return m, tea.Quit
		}
		return m, m.tickCmd()
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(tickEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) boundedDone() bool {
	for _, r := range m.rows {
		if r.total > 0 && !r.done {
			return false
		}
	}
	return true
}

// finishAll closes the unbounded rows so every sink ends on its
// closing line.
func (m Model) finishAll() {
	for _, r := range m.rows {
		if !r.done {
			r.done = true
			_ = r.bar.Finish(r.closing)
		}
	}
}
