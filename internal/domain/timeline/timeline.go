// Package timeline generates the evenly spaced timestamps that features are
// pinned to.
package timeline

import (
	"fmt"
	"math"
	"time"
)

// Layout is the ISO-8601 form written to GeoJSON and the page clock.
const Layout = "2006-01-02T15:04:05.000000Z07:00"

// Generate returns count instants starting at start, spaced exactly step apart.
func Generate(start time.Time, step time.Duration, count int) ([]time.Time, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStep, step)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if !Fits(step, count) {
		return nil, fmt.Errorf("%w: %d steps of %s overflow the time range", ErrInvalidCount, count, step)
	}

	start = start.UTC()
	out := make([]time.Time, count)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * step)
	}
	return out, nil
}

// StepFromSeconds converts a step interval in (possibly fractional) seconds.
// It returns 0 for values that are not positive, not finite, shorter than a
// nanosecond or longer than the largest time.Duration.
func StepFromSeconds(seconds float64) time.Duration {
	if !(seconds > 0) {
		return 0
	}
	ns := seconds * float64(time.Second)
	if ns >= math.MaxInt64 {
		return 0
	}
	return time.Duration(ns)
}

// Fits reports whether count instants spaced step apart span no more than
// the largest time.Duration.
func Fits(step time.Duration, count int) bool {
	if count <= 1 || step <= 0 {
		return true
	}
	return step <= time.Duration(math.MaxInt64)/time.Duration(count-1)
}

// Format renders t in Layout, always in UTC.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Bounds returns the first and last instants of ts.
func Bounds(ts []time.Time) (start, stop time.Time, ok bool) {
	if len(ts) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return ts[0], ts[len(ts)-1], true
}

// Pairs is the number of (timestamp, feature vector) pairs: the shorter of
// the two sequences. The timestamp count comes from simulation metadata while
// the feature count is one less than the episode count, so they rarely agree.
func Pairs(timestamps, vectors int) int {
	return min(timestamps, vectors)
}
