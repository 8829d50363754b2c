package tally

import "io"

// Reader counts bytes read through it into the bar, which makes byte
// progress a matter of wrapping the source before io.Copy.
type Reader struct {
	r io.Reader
	b *Bar
}

// NewReader wraps r so every read advances the bar by the bytes consumed.
func (b *Bar) NewReader(r io.Reader) *Reader {
	return &Reader{r: r, b: b}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		_ = r.b.Add(float64(n))
	}
	return n, err
}

// Close finishes the bar and closes the underlying reader when it is
// closable.
func (r *Reader) Close() error {
	if err := r.b.Finish(); err != nil {
		return err
	}
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Writer counts bytes written through it into the bar.
type Writer struct {
	w io.Writer
	b *Bar
}

// NewWriter wraps w so every write advances the bar by the bytes written.
func (b *Bar) NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, b: b}
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if n > 0 {
		_ = w.b.Add(float64(n))
	}
	return n, err
}

// Close finishes the bar and closes the underlying writer when it is
// closable.
func (w *Writer) Close() error {
	if err := w.b.Finish(); err != nil {
		return err
	}
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
