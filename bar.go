package tally

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var (
	// ErrDuplicateTag reports a template tag registered twice.
	ErrDuplicateTag = errors.New("tally: tag already registered")

	// ErrBadWidget reports a layout entry that is neither literal text
	// nor a Widget.
	ErrBadWidget = errors.New("tally: unrecognized widget entry")
)

// Sample is one progress measurement retained for adaptive estimation.
type Sample struct {
	Value   float64
	Elapsed float64
}

// Option configures a Bar. Options are applied by New and may be applied
// again by Start to override bounds that were unknown at construction.
type Option func(*Bar)

// WithMinimum sets the progress range minimum.
func WithMinimum(v float64) Option {
	return func(b *Bar) { b.minimum = v }
}

// WithMaximum sets the progress range maximum. Without it the bar runs
// in unbounded mode.
func WithMaximum(v float64) Option {
	return func(b *Bar) { b.maximum, b.maxSet = v, true }
}

// WithSize sets the display width in terminal cells.
func WithSize(n int) Option {
	return func(b *Bar) { b.size = n }
}

// WithRefresh sets the minimum interval between redraws.
func WithRefresh(d time.Duration) Option {
	return func(b *Bar) { b.refresh = d }
}

// WithWindow sets the sample window used by adaptive widgets: values of
// one or more are an absolute sample count, smaller values a fraction of
// the maximum (floored at five samples).
func WithWindow(keep float64) Option {
	return func(b *Bar) { b.window = keep }
}

// WithOutput redirects the bar's line writes. The writer is flushed
// after every line when it implements Flush() error. One writer must not
// be shared between concurrently driven bars; interleaving is undefined.
func WithOutput(w io.Writer) Option {
	return func(b *Bar) { b.out = w }
}

// WithRegistry swaps the built-in widget catalog for a custom one.
func WithRegistry(r *Registry) Option {
	return func(b *Bar) { b.registry = r }
}

// WithWidgets appends extra template entries: strings (parsed for {tag}
// placeholders) or ready Widget instances.
func WithWidgets(entries ...any) Option {
	return func(b *Bar) { b.template = append(b.template, entries...) }
}

// Bar tracks the progress of one unit of work and redraws a single
// status line on its output as the value advances. It is not safe for
// concurrent use; every method runs to completion on the caller's
// goroutine.
type Bar struct {
	registry *Registry
	vars     map[string]Widget
	template []any
	widgets  []any

	minimum float64
	maximum float64
	maxSet  bool
	current float64
	curSet  bool

	startTime time.Time
	endTime   time.Time
	finished  bool

	window    float64
	sampleCap int
	samples   []Sample

	size       int
	refresh    time.Duration
	renders    int
	lastRender time.Time

	out io.Writer
	now func() time.Time
}

// New builds a progress bar from a widget template, a string mixing
// literal text with {tag} placeholders:
//
//	bar := tally.New("Counting: {count} of {max} {bar} ETA {autoeta}",
//		tally.WithMaximum(100))
//
// An empty template selects a default at Start depending on whether a
// maximum is known by then.
func New(template string, opts ...Option) *Bar {
	b := &Bar{
		vars:    make(map[string]Widget),
		size:    80,
		refresh: 500 * time.Millisecond,
		window:  0.05,
		out:     os.Stdout,
		now:     time.Now,
	}
	if template != "" {
		b.template = []any{template}
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.registry == nil {
		b.registry = DefaultRegistry()
	}
	return b
}

// Minimum returns the progress range minimum.
func (b *Bar) Minimum() float64 { return b.minimum }

// Maximum returns the progress range maximum, if one is known.
func (b *Bar) Maximum() (float64, bool) { return b.maximum, b.maxSet }

// Current returns the current value; ok is false before the first update.
func (b *Bar) Current() (float64, bool) { return b.current, b.curSet }

// Percent returns the completed percentage. It is undefined while the
// maximum is unknown or zero.
func (b *Bar) Percent() (float64, bool) {
	if !b.maxSet || b.maximum == 0 {
		return 0, false
	}
	return 100 * b.current / b.maximum, true
}

// Elapsed returns seconds since Start, frozen once finished, zero before
// the bar starts.
func (b *Bar) Elapsed() float64 {
	if b.startTime.IsZero() {
		return 0
	}
	if !b.endTime.IsZero() {
		return b.endTime.Sub(b.startTime).Seconds()
	}
	return b.now().Sub(b.startTime).Seconds()
}

// Finished reports whether Finish has been called.
func (b *Bar) Finished() bool { return b.finished }

// Renders returns the number of lines actually drawn, which is fewer
// than the number of updates whenever the refresh throttle kicks in.
func (b *Bar) Renders() int { return b.renders }

// Samples returns a copy of the retained sample window, oldest first.
func (b *Bar) Samples() []Sample {
	out := make([]Sample, len(b.samples))
	copy(out, b.samples)
	return out
}

// property resolves the named scalar for the Property widget.
func (b *Bar) property(name string) (float64, bool) {
	switch name {
	case "current":
		if !b.curSet {
			return 0, false
		}
		return b.current, true
	case "minimum":
		return b.minimum, true
	case "maximum":
		if !b.maxSet {
			return 0, false
		}
		return b.maximum, true
	case "percent":
		return b.Percent()
	case "elapsed":
		return b.Elapsed(), true
	case "finished":
		if b.finished {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Register makes a custom widget instance available to this bar's
// templates under tag. It fails if the tag collides with a built-in or
// an earlier registration. Template tokens that were unknown when the
// template resolved are re-resolved, so registering after New still
// binds them.
func (b *Bar) Register(tag string, w Widget) error {
	if w == nil {
		return fmt.Errorf("%w: nil widget for tag %q", ErrBadWidget, tag)
	}
	tag = strings.ToLower(tag)
	if _, ok := b.vars[tag]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	if b.registry.Has(tag) {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	b.vars[tag] = w
	b.widgets = b.resolve(b.widgets)
	return nil
}

// Start resets timing and counters, applies any Option overrides (for
// bounds that were unknown at construction), resolves the widget
// template and performs the initial update at the range minimum.
func (b *Bar) Start(opts ...Option) error {
	return b.StartAt(b.minimum, opts...)
}

// StartAt is Start with an explicit initial value.
func (b *Bar) StartAt(value float64, opts ...Option) error {
	for _, opt := range opts {
		opt(b)
	}

	b.startTime = b.now()
	b.endTime = time.Time{}
	b.lastRender = time.Time{}
	b.finished = false
	b.current, b.curSet = 0, false
	b.renders = 0
	b.samples = b.samples[:0]

	if len(b.template) == 0 {
		if b.maxSet && b.maximum != 0 {
			b.template = []any{DefaultTemplate}
		} else {
			b.template = []any{DefaultTemplateUnbounded}
		}
	}
	b.widgets = b.resolve(b.template)
	b.sampleCap = sampleCapacity(b.window, b.maximum, b.maxSet)

	return b.update(value, renderAuto)
}

// Reset returns the bar to its pre-start state. Configuration (size,
// refresh interval, sample window, bounds, registered variables)
// survives.
func (b *Bar) Reset() {
	b.startTime = time.Time{}
	b.endTime = time.Time{}
	b.lastRender = time.Time{}
	b.finished = false
	b.current, b.curSet = 0, false
	b.samples = nil
	b.renders = 0
}

// Update sets the current value, records a sample and redraws the line
// when the refresh policy allows.
func (b *Bar) Update(value float64) error { return b.update(value, renderAuto) }

// Set records the value without redrawing.
func (b *Bar) Set(value float64) error { return b.update(value, renderNever) }

// Refresh records the current value again and redraws unconditionally.
func (b *Bar) Refresh() error { return b.update(b.current, renderAlways) }

// Add increases the current value by delta.
func (b *Bar) Add(delta float64) error {
	if b.curSet {
		return b.update(b.current+delta, renderAuto)
	}
	return b.update(delta, renderAuto)
}

// Finish freezes the clock and draws one final line at the maximum (or
// the current value when unbounded). Optional closing entries are
// written as a permanent report line; with none the bar line itself is
// made permanent. Calling Finish again only writes the closing entries,
// leaving timing untouched.
func (b *Bar) Finish(closing ...any) error {
	if b.finished {
		if len(closing) > 0 {
			return b.Write(closing...)
		}
		return nil
	}

	b.endTime = b.now()
	b.finished = true

	final := b.current
	if b.maxSet {
		final = b.maximum
	}
	if err := b.update(final, renderFinal); err != nil {
		return err
	}

	if len(closing) > 0 {
		return b.Write(closing...)
	}
	return b.writeLine("\r", "", "\n")
}

// Write renders a one-off widget line and makes it permanent; while the
// bar is still running the main progress line is redrawn beneath it so
// the bar stays visible.
func (b *Bar) Write(entries ...any) error { return b.write(entries, true) }

// WriteTransient renders a one-off line that the next update overwrites.
func (b *Bar) WriteTransient(entries ...any) error { return b.write(entries, false) }

type renderMode int

const (
	renderAuto renderMode = iota
	renderAlways
	renderNever
	renderFinal // Finish's closing render; the only mutation allowed after finish
)

func (b *Bar) update(value float64, mode renderMode) error {
	if b.startTime.IsZero() {
		return b.StartAt(value)
	}

	// once finished, the line is frozen: updates neither record nor render
	if b.finished && mode != renderFinal {
		return nil
	}

	b.current = value
	b.curSet = true

	b.samples = append(b.samples, Sample{Value: value, Elapsed: b.Elapsed()})
	if n := len(b.samples) - b.sampleCap; n > 0 {
		b.samples = append(b.samples[:0], b.samples[n:]...)
	}

	if mode == renderNever || (mode == renderAuto && !b.shouldRender()) {
		return nil
	}

	line, err := b.compose(b.widgets)
	if err != nil {
		return err
	}
	if err := b.writeLine("\r", line, ""); err != nil {
		return err
	}
	b.lastRender = b.now()
	b.renders++
	return nil
}

func (b *Bar) shouldRender() bool {
	if b.lastRender.IsZero() {
		return true
	}
	return b.now().Sub(b.lastRender) >= b.refresh
}

func (b *Bar) write(entries []any, permanent bool) error {
	line, err := b.compose(b.resolve(entries))
	if err != nil {
		return err
	}
	end := ""
	if permanent {
		end = "\n"
	}
	if err := b.writeLine("\r", line, end); err != nil {
		return err
	}

	// keep the running bar visible under a permanent message
	if permanent && b.renders > 0 && !b.finished {
		main, err := b.compose(b.widgets)
		if err != nil {
			return err
		}
		return b.writeLine("\r", main, "")
	}
	return nil
}

type flusher interface {
	Flush() error
}

func (b *Bar) writeLine(pref, line, end string) error {
	if _, err := io.WriteString(b.out, lineClear); err != nil {
		return err
	}
	if _, err := io.WriteString(b.out, pref+line+end); err != nil {
		return err
	}
	if f, ok := b.out.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func sampleCapacity(window, maximum float64, maxSet bool) int {
	cap := 5
	switch {
	case window >= 1:
		cap = int(window)
	case maxSet && maximum > 0:
		if n := int(maximum * window); n > cap {
			cap = n
		}
	}
	if cap < 1 {
		cap = 1
	}
	return cap
}
