package metrics

import (
	"sync"
	"time"
)

// Timer measures the duration of a scoped operation and records it into its
// histogram exactly once. Either the explicit Stop path or the deferred
// ObserveDuration path fires; whichever runs first takes the histogram
// reference out of the timer, making the other a structural no-op.
//
// Typical use:
//
//	t := hist.StartTimer()
//	defer t.ObserveDuration()
//	// ... work; optionally: elapsed, err := t.Stop()
type Timer struct {
	mu    sync.Mutex
	start time.Time
	hist  Histogram
}

func newTimer(h Histogram) *Timer {
	return &Timer{start: time.Now(), hist: h}
}

// Stop records the elapsed time into the histogram and returns it. The elapsed
// duration is returned even when recording fails; the record error is passed
// through to the caller. Calling Stop on an already-consumed timer returns the
// elapsed time without recording again.
func (t *Timer) Stop() (time.Duration, error) {
	elapsed := time.Since(t.start)
	h := t.take()
	if h == nil {
		return elapsed, nil
	}
	return elapsed, h.Record(elapsed.Seconds())
}

// ObserveDuration records the elapsed time if the timer has not been stopped
// yet, discarding any record error. Intended for defer so the measurement is
// taken on every exit path, including early returns and panics.
func (t *Timer) ObserveDuration() {
	h := t.take()
	if h == nil {
		return
	}
	_ = h.Record(time.Since(t.start).Seconds())
}

// take removes and returns the histogram reference, or nil if already consumed.
func (t *Timer) take() Histogram {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.hist
	t.hist = nil
	return h
}
