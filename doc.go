// Package tally renders a single, continuously updating status line on a
// terminal, composed from reusable widgets arranged by a small {tag}
// template language.
//
// # Usage
//
//	bar := tally.New("Counting: {count} of {max} ({percent}%) {bar} {speed}/s | ETA {autoeta}",
//		tally.WithMaximum(100))
//
//	_ = bar.Start()
//	for i := 0; i < 100; i++ {
//		work(i)
//		_ = bar.Add(1)
//	}
//	_ = bar.Finish("Done: {count} items in {autotimer}.")
//
// Or let the iteration driver manage start and cleanup:
//
//	for i := range tally.Span(bar, 100) {
//		work(i)
//	}
//
// # Templates
//
// Templates mix literal text with case-insensitive {tag} placeholders.
// Unknown tags pass through literally. Built-in tags include value
// readouts ({count}, {min}, {max}, {percent}, scaled {data}/{sci}
// variants), timing ({timer}, {autotimer}, {eta}, {autoeta}, {abseta},
// {time}), rates ({speed}, {bps}, {dataspeed}, {scispeed}), expanding
// gauges ({bar}, {gauge}) and a family of spinners ({spin}, {dots},
// {pie}, {snake}, {vbar}, ... with rel-prefixed variants tied to the
// completed fraction). Custom widgets register per bar:
//
//	_ = bar.Register("user", &tally.Variable{Fn: currentUser})
//
// # Output
//
// The bar writes to any io.Writer (stdout by default) and flushes after
// each line when the writer implements Flush() error. Each redraw emits
// a line-clear escape and a carriage return, never a newline, until the
// line is made permanent by Finish or Write. A Bar is single-threaded by
// design: the caller that updates it owns both the bar and its writer,
// and nothing here spawns goroutines or timers. Redraws are throttled to
// the configured refresh interval, checked lazily on each update.
package tally
