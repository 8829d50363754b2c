package tally

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps template tags to widget constructors. Tags are
// case-insensitive and globally unique within one registry. A fresh
// widget instance is constructed per template resolution, so stateful
// widgets like Spin never leak animation state between bars.
type Registry struct {
	entries map[string]func() Widget
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]func() Widget)}
}

// Register binds tag to a widget constructor. Registering a tag twice is
// a configuration error.
func (r *Registry) Register(tag string, ctor func() Widget) error {
	tag = strings.ToLower(tag)
	if _, ok := r.entries[tag]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	r.entries[tag] = ctor
	return nil
}

// Widget constructs the widget registered under tag.
func (r *Registry) Widget(tag string) (Widget, bool) {
	ctor, ok := r.entries[strings.ToLower(tag)]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Has reports whether tag is taken.
func (r *Registry) Has(tag string) bool {
	_, ok := r.entries[strings.ToLower(tag)]
	return ok
}

// Tags lists the registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.entries))
	for tag := range r.entries {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DefaultRegistry returns a registry populated with the built-in widget
// catalog. Every Bar gets its own copy unless WithRegistry overrides it.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	add := func(tag string, ctor func() Widget) {
		if err := r.Register(tag, ctor); err != nil {
			panic(err)
		}
	}
	prop := func(name string, precision int) func() Widget {
		return func() Widget { return &Property{Name: name, Precision: precision} }
	}
	scaled := func(name string, step float64) func() Widget {
		return func() Widget {
			return &Property{Name: name, Precision: 2, Prefixes: Prefixes, Step: step}
		}
	}
	spin := func(markers, fin string, relative bool) func() Widget {
		return func() Widget { return &Spin{Markers: markers, Finished: fin, Relative: relative} }
	}

	// plain readouts
	add("current", prop("current", -1))
	add("minimum", prop("minimum", -1))
	add("maximum", prop("maximum", -1))
	add("min", prop("minimum", -1))
	add("max", prop("maximum", -1))
	add("count", prop("current", 0))
	add("percent", prop("percent", 0))

	// scaled readouts
	add("data", scaled("current", 1024))
	add("dataminimum", scaled("minimum", 1024))
	add("datamaximum", scaled("maximum", 1024))
	add("datamin", scaled("minimum", 1024))
	add("datamax", scaled("maximum", 1024))
	add("sci", scaled("current", 1000))
	add("sciminimum", scaled("minimum", 1000))
	add("scimaximum", scaled("maximum", 1000))
	add("scimin", scaled("minimum", 1000))
	add("scimax", scaled("maximum", 1000))

	// clocks and timers
	add("time", func() Widget { return &Clock{} })
	add("timer", func() Widget { return &Timer{Template: TimeHMS} })
	add("autotimer", func() Widget { return &Timer{Units: true} })

	// estimates
	add("eta", func() Widget { return &ETA{Template: TimeHMS, Adaptive: true} })
	add("autoeta", func() Widget { return &ETA{Units: true, Adaptive: true} })
	add("abseta", func() Widget { return &ETA{Template: TimeAbsolute, Absolute: true, Adaptive: true} })

	// rates
	add("speed", func() Widget { return &Speed{Precision: 2, Adaptive: true} })
	add("bps", func() Widget { return &Speed{Precision: 2, Prefixes: Prefixes, Step: 1024, Adaptive: true} })
	add("dataspeed", func() Widget { return &Speed{Precision: 2, Prefixes: Prefixes, Step: 1024, Adaptive: true} })
	add("scispeed", func() Widget { return &Speed{Precision: 2, Prefixes: Prefixes, Step: 1000, Adaptive: true} })

	// gauges
	add("gauge", func() Widget { return &Gauge{Marker: "|", Left: "|", Right: "|", Fill: "-"} })
	add("bar", func() Widget { return &Gauge{Marker: "█", Fill: "-"} })

	// spinners
	add("arrow", spin(Arrow, "↑", false))
	add("circle", spin(Circle, "", false))
	add("dots", spin(Dots, "", false))
	add("fade", spin(Fade, "", false))
	add("hbar", spin(HBar, "", false))
	add("line", spin(Line, "", false))
	add("moon", spin(Moon, "", false))
	add("pie", spin(Pie, "", false))
	add("pixel", spin(Pixel, "⣿", false))
	add("snake", spin(Snake, "", false))
	add("spin", spin(Star, "|", false))
	add("star", spin(Star, "|", false))
	add("vbar", spin(VBar, "", false))

	add("reldots", spin(Dots, "", true))
	add("relfade", spin(Fade, "", true))
	add("relhbar", spin(HBar, "", true))
	add("relpie", spin(Pie, "", true))
	add("relsnake", spin(Snake, "", true))
	add("relvbar", spin(VBar, "", true))

	return r
}
