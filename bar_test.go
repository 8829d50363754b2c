package tally

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeClock stands in for time.Now so throttle and timing tests are
// deterministic.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBar(t *testing.T, template string, opts ...Option) (*Bar, *fakeClock, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	b := New(template, append(opts, WithOutput(out))...)
	b.now = clk.now
	return b, clk, out
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		current float64
		want    float64
		wantOK  bool
	}{
		{name: "half done", opts: []Option{WithMaximum(100)}, current: 50, want: 50, wantOK: true},
		{name: "full", opts: []Option{WithMaximum(200)}, current: 200, want: 100, wantOK: true},
		{name: "zero maximum undefined", opts: []Option{WithMaximum(0)}, current: 10, wantOK: false},
		{name: "unknown maximum undefined", opts: nil, current: 10, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, _ := newTestBar(t, "{count}", tt.opts...)
			if err := b.Update(tt.current); err != nil {
				t.Fatalf("Update: %v", err)
			}
			got, ok := b.Percent()
			if ok != tt.wantOK {
				t.Fatalf("Percent() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Percent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSampleWindowFIFO(t *testing.T) {
	b, _, _ := newTestBar(t, "{count}", WithMaximum(100), WithWindow(3))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for v := 1.0; v <= 5; v++ {
		if err := b.Update(v); err != nil {
			t.Fatalf("Update(%v): %v", v, err)
		}
		if len(b.Samples()) > 3 {
			t.Fatalf("sample window grew to %d, capacity 3", len(b.Samples()))
		}
	}
	samples := b.Samples()
	if len(samples) != 3 {
		t.Fatalf("len(Samples()) = %d, want 3", len(samples))
	}
	for i, want := range []float64{3, 4, 5} {
		if samples[i].Value != want {
			t.Errorf("samples[%d].Value = %v, want %v (oldest must be evicted first)", i, samples[i].Value, want)
		}
	}
}

func TestSampleCapacityDerived(t *testing.T) {
	tests := []struct {
		name   string
		window float64
		max    float64
		maxSet bool
		want   int
	}{
		{name: "absolute count", window: 20, want: 20},
		{name: "fraction of maximum", window: 0.05, max: 1000, maxSet: true, want: 50},
		{name: "fraction floored", window: 0.05, max: 40, maxSet: true, want: 5},
		{name: "fraction without maximum", window: 0.05, want: 5},
		{name: "zero window keeps default", window: 0, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sampleCapacity(tt.window, tt.max, tt.maxSet); got != tt.want {
				t.Errorf("sampleCapacity(%v, %v, %v) = %d, want %d", tt.window, tt.max, tt.maxSet, got, tt.want)
			}
		})
	}
}

func TestRefreshThrottle(t *testing.T) {
	b, clk, _ := newTestBar(t, "{count}", WithMaximum(100), WithRefresh(time.Second))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := b.Renders(); got != 1 {
		t.Fatalf("Renders() after Start = %d, want 1 (first render is never throttled)", got)
	}

	clk.advance(400 * time.Millisecond)
	if err := b.Update(10); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := b.Renders(); got != 1 {
		t.Errorf("Renders() inside interval = %d, want 1", got)
	}

	clk.advance(700 * time.Millisecond) // 1.1s since last render
	if err := b.Update(20); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := b.Renders(); got != 2 {
		t.Errorf("Renders() past interval = %d, want 2", got)
	}
}

func TestSetNeverRendersRefreshAlwaysDoes(t *testing.T) {
	b, _, _ := newTestBar(t, "{count}", WithMaximum(100))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	renders := b.Renders()

	if err := b.Set(42); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cur, _ := b.Current(); cur != 42 {
		t.Errorf("Current() after Set = %v, want 42", cur)
	}
	if b.Renders() != renders {
		t.Errorf("Set must not render: Renders() = %d, want %d", b.Renders(), renders)
	}

	if err := b.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if b.Renders() != renders+1 {
		t.Errorf("Refresh must render: Renders() = %d, want %d", b.Renders(), renders+1)
	}
}

func TestUpdateBeforeStartDelegates(t *testing.T) {
	b, _, _ := newTestBar(t, "{count}", WithMaximum(100))
	if err := b.Update(5); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if b.Elapsed() != 0 {
		// fake clock has not advanced; the point is startTime got set
		t.Errorf("Elapsed() = %v, want 0", b.Elapsed())
	}
	if cur, ok := b.Current(); !ok || cur != 5 {
		t.Errorf("Current() = %v, %v, want 5, true", cur, ok)
	}
	if b.Renders() == 0 {
		t.Error("first update must render")
	}
}

func TestFinish(t *testing.T) {
	b, clk, _ := newTestBar(t, "{count}", WithMaximum(100))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := b.Update(50); err != nil {
		t.Fatalf("Update: %v", err)
	}

	clk.advance(2 * time.Second)
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !b.Finished() {
		t.Fatal("Finished() = false after Finish")
	}
	if cur, _ := b.Current(); cur != 100 {
		t.Errorf("Current() after Finish = %v, want maximum 100", cur)
	}
	if got := b.Elapsed(); got != 2 {
		t.Errorf("Elapsed() frozen = %v, want 2", got)
	}

	// elapsed stays frozen and updates are reporting-only
	clk.advance(time.Hour)
	if got := b.Elapsed(); got != 2 {
		t.Errorf("Elapsed() after more time = %v, want 2", got)
	}
	if err := b.Update(10); err != nil {
		t.Fatalf("Update after Finish: %v", err)
	}
	if cur, _ := b.Current(); cur != 100 {
		t.Errorf("Current() changed by post-finish update: %v, want 100", cur)
	}
}

func TestFinishFreezesOutput(t *testing.T) {
	b, _, out := newTestBar(t, "{count}", WithMaximum(100))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	out.Reset()
	if err := b.Update(10); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := b.Set(20); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("post-finish updates wrote %q, want nothing", out.String())
	}
	if cur, _ := b.Current(); cur != 100 {
		t.Errorf("Current() = %v, want the frozen 100", cur)
	}
	if len(b.Samples()) != 2 {
		t.Errorf("post-finish updates recorded samples: %d, want 2", len(b.Samples()))
	}
}

func TestFinishIdempotent(t *testing.T) {
	b, clk, out := newTestBar(t, "{count}", WithMaximum(10))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clk.advance(time.Second)
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	end := b.Elapsed()

	clk.advance(time.Minute)
	out.Reset()
	if err := b.Finish(); err != nil {
		t.Fatalf("second Finish: %v", err)
	}
	if got := b.Elapsed(); got != end {
		t.Errorf("second Finish moved end time: Elapsed() = %v, want %v", got, end)
	}
	if out.Len() != 0 {
		t.Errorf("second Finish without closing widgets wrote %q, want nothing", out.String())
	}

	if err := b.Finish("done"); err != nil {
		t.Fatalf("Finish with closing widgets: %v", err)
	}
	if !strings.Contains(out.String(), "done") {
		t.Errorf("repeated Finish must still write requested closing widgets, got %q", out.String())
	}
}

func TestFinishUnboundedKeepsCurrent(t *testing.T) {
	b, _, _ := newTestBar(t, "{count}")
	if err := b.Update(7); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if cur, _ := b.Current(); cur != 7 {
		t.Errorf("Current() after unbounded Finish = %v, want 7", cur)
	}
}

func TestFinishWithClosingTemplate(t *testing.T) {
	b, _, out := newTestBar(t, "{count}", WithMaximum(10))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := b.Finish("All {count} done."); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !strings.Contains(out.String(), "All 10 done.\n") {
		t.Errorf("closing template not written permanently, got %q", out.String())
	}
}

func TestWritePermanentRedrawsBar(t *testing.T) {
	b, _, out := newTestBar(t, "{count}", WithMaximum(100), WithSize(20))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	out.Reset()
	if err := b.Write("halfway there"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "halfway there\n") {
		t.Fatalf("permanent message missing newline, got %q", s)
	}
	if idx := strings.Index(s, "halfway there\n"); !strings.Contains(s[idx:], "\r0") {
		t.Errorf("main line not redrawn after permanent write, got %q", s)
	}
}

func TestWriteTransient(t *testing.T) {
	b, _, out := newTestBar(t, "{count}", WithMaximum(100))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	out.Reset()
	if err := b.WriteTransient("brb"); err != nil {
		t.Fatalf("WriteTransient: %v", err)
	}
	if strings.Contains(out.String(), "\n") {
		t.Errorf("transient write must not emit a newline, got %q", out.String())
	}
}

func TestLineClearPrefix(t *testing.T) {
	b, _, out := newTestBar(t, "{count}", WithMaximum(10))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !strings.HasPrefix(out.String(), lineClear+"\r") {
		t.Errorf("render must clear the line first, got %q", out.String())
	}
}

func TestDefaultTemplateSelection(t *testing.T) {
	bounded, _, out := newTestBar(t, "", WithMaximum(100))
	if err := bounded.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !strings.Contains(out.String(), " of ") {
		t.Errorf("bounded default template not used, got %q", out.String())
	}

	unbounded, _, uout := newTestBar(t, "")
	if err := unbounded.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if strings.Contains(uout.String(), " of ") {
		t.Errorf("unbounded bar must not use the bounded template, got %q", uout.String())
	}
}

func TestResetKeepsConfiguration(t *testing.T) {
	b, clk, _ := newTestBar(t, "{count}", WithMaximum(100), WithSize(42))
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clk.advance(time.Second)
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	b.Reset()
	if b.Finished() {
		t.Error("Reset must clear the finished flag")
	}
	if b.Elapsed() != 0 {
		t.Errorf("Elapsed() after Reset = %v, want 0", b.Elapsed())
	}
	if _, ok := b.Current(); ok {
		t.Error("Current() set after Reset")
	}
	if len(b.Samples()) != 0 {
		t.Error("samples survived Reset")
	}
	if b.size != 42 {
		t.Errorf("size lost on Reset: %d, want 42", b.size)
	}
	if max, ok := b.Maximum(); !ok || max != 100 {
		t.Errorf("maximum lost on Reset: %v, %v", max, ok)
	}
}

func TestStartOverridesBounds(t *testing.T) {
	b, _, _ := newTestBar(t, "{count}")
	if err := b.Start(WithMaximum(500)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if max, ok := b.Maximum(); !ok || max != 500 {
		t.Errorf("Maximum() = %v, %v, want 500, true", max, ok)
	}
}

func TestSinkErrorPropagates(t *testing.T) {
	b, _, _ := newTestBar(t, "{count}", WithMaximum(10))
	wantErr := errors.New("sink closed")
	b.out = failWriter{err: wantErr}
	if err := b.Start(); !errors.Is(err, wantErr) {
		t.Errorf("Start() error = %v, want %v", err, wantErr)
	}
}

type failWriter struct {
	err error
}

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }
