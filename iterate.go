package tally

import "iter"

// Each drives the bar over seq, adding one per element. The bar starts
// on first pull and finishes on every exit path, including an early
// break out of the range loop, so the terminal line is always left in a
// clean state:
//
//	for line := range tally.Each(bar, lines) {
//		if err := handle(line); err != nil {
//			break // bar.Finish still runs
//		}
//	}
func Each[T any](b *Bar, seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		_ = b.Start()
		defer func() { _ = b.Finish() }()
		for v := range seq {
			if !yield(v) {
				return
			}
			_ = b.Add(1)
		}
	}
}

// Span counts from 0 to n-1 behind a bar bounded at n, with the same
// cleanup guarantee as Each.
func Span(b *Bar, n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		_ = b.Start(WithMaximum(float64(n)))
		defer func() { _ = b.Finish() }()
		for i := range n {
			if !yield(i) {
				return
			}
			_ = b.Add(1)
		}
	}
}
