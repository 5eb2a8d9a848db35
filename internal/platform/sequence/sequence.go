// Package sequence issues the human-readable accession numbers used across the
// generated corpus.
package sequence

import (
	"fmt"
	"time"
)

// Allocator issues IDs of the form PREFIX-YYYYMMDD-NNN with a strictly
// increasing counter scoped to each (prefix, calendar day) pair. An Allocator
// is owned by a single pipeline run; it is not safe for concurrent use.
type Allocator struct {
	counters map[string]int
}

// New returns an empty Allocator.
func New() *Allocator {
	return &Allocator{counters: make(map[string]int)}
}

// Next returns the next ID for prefix on the given calendar day. The counter
// for a (prefix, day) pair starts at 1 the first time the pair is seen.
func (a *Allocator) Next(prefix string, date time.Time) string {
	key := prefix + "-" + date.Format("20060102")
	a.counters[key]++
	return fmt.Sprintf("%s-%03d", key, a.counters[key])
}

// Reset clears every counter. Call it once at the start of each independent
// run so IDs never collide across runs.
func (a *Allocator) Reset() {
	a.counters = make(map[string]int)
}
