package tally

import (
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Widget renders one fragment of the progress line from the bar's state.
// Rendering may read the clock, and for Spin it advances internal state,
// so the composer invokes each widget exactly once per line.
type Widget interface {
	Render(b *Bar, width int) string
}

// Expander is a Widget whose width is not fixed but allocated from the
// line space left over after all fixed fragments are measured.
type Expander interface {
	Widget
	Expanding() bool
}

// Property shows one scalar readout of the bar: "current", "minimum",
// "maximum", "percent", "elapsed" or "finished" (1 or 0). Unset readouts
// render as "N/A". With a prefix table the value is scaled by powers of
// Step.
type Property struct {
	Name      string
	Precision int // digits after the point; negative for default formatting
	Prefixes  []string
	Step      float64
}

func (p *Property) Render(b *Bar, _ int) string {
	value, ok := b.property(p.Name)
	if !ok {
		return notAvail
	}
	return FormatPower(value, p.Precision, p.Prefixes, p.Step)
}

// Clock shows the current wall-clock time.
type Clock struct {
	Layout string // time layout; empty uses TimeAbsolute
}

func (c *Clock) Render(b *Bar, _ int) string {
	layout := c.Layout
	if layout == "" {
		layout = TimeAbsolute
	}
	return b.now().Format(layout)
}

// Timer shows the elapsed time. An empty template picks one of the
// standard templates by magnitude; see FormatTime.
type Timer struct {
	Template string
	Units    bool
}

func (t *Timer) Render(b *Bar, _ int) string {
	return FormatTime(int(b.Elapsed()), t.Template, t.Units)
}

// ETA estimates the remaining (or, with Absolute, the finishing) time.
// It needs a known maximum and a nonzero current value, and answers
// "N/A" until both exist. In adaptive mode the rate comes from the delta
// against the oldest retained sample instead of the whole run.
type ETA struct {
	Template string
	Units    bool
	Absolute bool
	Adaptive bool
}

func (e *ETA) Render(b *Bar, _ int) string {
	max, maxOK := b.Maximum()
	cur, curOK := b.Current()
	if !maxOK || max == 0 || !curOK || cur == 0 {
		return notAvail
	}
	if b.Finished() {
		return FormatTime(0, e.Template, e.Units)
	}

	current, elapsed := cur, b.Elapsed()
	remains := max - current

	if e.Adaptive {
		if samples := b.Samples(); len(samples) > 0 {
			oldest := samples[0]
			if current != oldest.Value && elapsed != oldest.Elapsed {
				current -= oldest.Value
				elapsed -= oldest.Elapsed
			}
		}
	}

	secs := int(remains * (elapsed / current))
	if e.Absolute {
		return b.now().Add(time.Duration(secs) * time.Second).Format(TimeAbsolute)
	}
	return FormatTime(secs, e.Template, e.Units)
}

// Speed shows the progress rate per second, scaled through the prefix
// table like Property. Values below the noise threshold report zero.
type Speed struct {
	Precision int
	Prefixes  []string
	Step      float64
	Adaptive  bool
}

func (s *Speed) Render(b *Bar, _ int) string {
	current, _ := b.Current()
	elapsed := b.Elapsed()

	if s.Adaptive && !b.Finished() {
		if samples := b.Samples(); len(samples) > 0 {
			oldest := samples[0]
			if current != oldest.Value && elapsed != oldest.Elapsed {
				current -= oldest.Value
				elapsed -= oldest.Elapsed
			}
		}
	}

	speed := 0.0
	if elapsed >= 2e-6 && current >= 2e-6 {
		speed = current / elapsed
	}
	return FormatPower(speed, s.Precision, s.Prefixes, s.Step)
}

// Gauge draws a proportionally filled bar between the edge characters.
// Without a known maximum the marker bounces back and forth across the
// span instead. A zero Size takes whatever line space remains.
type Gauge struct {
	Marker string
	Left   string
	Right  string
	Fill   string
	Tip    string
	Size   int
}

func (g *Gauge) Expanding() bool { return true }

func (g *Gauge) Render(b *Bar, width int) string {
	if g.Size > 0 {
		width = g.Size
	}
	width -= runewidth.StringWidth(g.Left) + runewidth.StringWidth(g.Right)
	if width < 0 {
		width = 0
	}

	if b.Finished() {
		return g.Left + strings.Repeat(g.Fill, width) + g.Right
	}

	var span string
	if max, ok := b.Maximum(); ok && max != 0 {
		percent, _ := b.Percent()
		span = repeat(g.Marker, int(percent/100*float64(width)))
		if span != "" && g.Tip != "" {
			runes := []rune(span)
			span = string(runes[:len(runes)-1]) + g.Tip
		}
		if pad := width - runewidth.StringWidth(span); pad > 0 {
			span += strings.Repeat(g.Fill, pad)
		}
	} else {
		position := 0
		if width > 1 {
			current, _ := b.Current()
			position = int(math.Mod(current, float64(width*2-1)))
			if position > width {
				position = width*2 - position
			}
		}
		left := repeat(g.Fill, position-1)
		right := repeat(g.Fill, width-runewidth.StringWidth(g.Marker)-runewidth.StringWidth(left))
		span = left + g.Marker + right
	}

	return g.Left + span + g.Right
}

func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

// Spin animates a marker sequence, one frame per render. In relative
// mode the frame is picked proportionally to the completed fraction
// instead of cycling. This is the only widget with per-instance state.
type Spin struct {
	Markers  string
	Finished string // shown after finish; defaults to the last marker
	Relative bool

	cursor int
}

func (s *Spin) Render(b *Bar, _ int) string {
	markers := []rune(s.Markers)
	if len(markers) == 0 {
		return ""
	}
	if b.Finished() {
		if s.Finished != "" {
			return s.Finished
		}
		return string(markers[len(markers)-1])
	}

	if s.Relative {
		if percent, ok := b.Percent(); ok {
			i := int(float64(len(markers)) * percent / 100)
			// current == maximum lands exactly on len(markers)
			if i > len(markers)-1 {
				i = len(markers) - 1
			}
			if i < 0 {
				i = 0
			}
			s.cursor = i
			return string(markers[i])
		}
	}

	i := s.cursor % len(markers)
	s.cursor = i + 1
	return string(markers[i])
}

// Variable displays whatever the caller-supplied callback returns,
// typically a value tracked outside the bar.
type Variable struct {
	Fn func() string
}

func (v *Variable) Render(*Bar, int) string {
	if v.Fn == nil {
		return ""
	}
	return v.Fn()
}
