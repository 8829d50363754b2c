package ui

import (
	"strings"

	"tally"
)

// lineSink is the io.Writer the showcase hands each bar. It keeps only
// the latest carriage-return-delimited line, which is exactly what a
// terminal would be showing.
type lineSink struct {
	line string
}

func (s *lineSink) Write(p []byte) (int, error) {
	text := strings.ReplaceAll(string(p), "\x1b[2K", "")
	if i := strings.LastIndexByte(text, '\r'); i >= 0 {
		text = text[i+1:]
	}
	if text = strings.TrimRight(text, "\n"); text != "" {
		s.line = text
	}
	return len(p), nil
}

// rowState is one showcase row: a bar with its own template, sink and
// per-tick step.
type rowState struct {
	name    string
	bar     *tally.Bar
	sink    *lineSink
	step    float64
	total   float64 // zero runs unbounded
	closing string
	done    bool
}

func newRowState(name, template string, total, step float64, closing string, size int) *rowState {
	sink := &lineSink{}
	opts := []tally.Option{
		tally.WithSize(size),
		tally.WithRefresh(0), // the tick cadence is the throttle here
		tally.WithOutput(sink),
	}
	if total > 0 {
		opts = append(opts, tally.WithMaximum(total))
	}
	return &rowState{
		name:    name,
		bar:     tally.New(template, opts...),
		sink:    sink,
		step:    step,
		total:   total,
		closing: closing,
	}
}

// advance moves the row one tick and reports whether it just completed.
func (r *rowState) advance() (bool, error) {
	if r.done {
		return false, nil
	}
	if err := r.bar.Add(r.step); err != nil {
		return false, err
	}
	cur, _ := r.bar.Current()
	if r.total > 0 && cur >= r.total {
		r.done = true
		if err := r.bar.Finish(r.closing); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
