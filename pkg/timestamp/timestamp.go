// Package timestamp provides the high-resolution counter used to bracket every
// timed iteration.
//
// The counter is chosen per platform at build time:
//   - amd64: the time-stamp counter (RDTSC), in CPU cycles
//   - arm64: the generic timer virtual count (CNTVCT_EL0), in timer ticks
//   - other unix targets: CLOCK_MONOTONIC, in nanoseconds
//   - anything else: the Go runtime monotonic clock, in nanoseconds
//
// Building with the `noasm` tag forces the portable clock on every architecture.
// Units are never normalized: a delta is an opaque integer in whatever scale
// the active counter reports.
package timestamp

import (
	"math"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/internal/constants"
	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

// Unit identifies the scale of the values returned by Now.
type Unit string

const (
	// UnitCycles is a CPU cycle (time-stamp counter) count.
	UnitCycles Unit = "cycles"
	// UnitTicks is a constant-frequency generic timer count.
	UnitTicks Unit = "ticks"
	// UnitNanoseconds is a monotonic clock reading in nanoseconds.
	UnitNanoseconds Unit = "ns"
)

// String returns the string representation of the Unit.
func (u Unit) String() string {
	return string(u)
}

// Now returns the current counter value.
// Consecutive calls on the same thread are assumed to be non-decreasing; this is
// a property of the underlying counter and is not enforced here.
func Now() uint64 {
	return now()
}

// Elapsed returns end - start. Callers must pass the readings in that order.
func Elapsed(start, end uint64) uint64 {
	return end - start
}

// Source returns the name of the counter backing Now.
func Source() string {
	return source
}

// CounterUnit returns the unit of the values returned by Now.
func CounterUnit() Unit {
	return unit
}

// Frequency returns the counter frequency in Hz when the hardware reports it,
// or 0 when it is unknown (the time-stamp counter on amd64).
func Frequency() uint64 {
	return frequency()
}

// Check verifies that the counter can be read and that back-to-back reads do not go
// backwards. It is meant to run once at startup; Now itself never fails.
func Check() error {
	err := checkSource()
	if err != nil {
		return ewrap.Wrap(sentinel.ErrClockUnavailable, err.Error())
	}

	for range constants.ClockCheckPairs {
		start := now()
		end := now()

		if end < start {
			return ewrap.Wrapf(sentinel.ErrClockNotMonotonic, "%s: %d after %d", source, end, start)
		}
	}

	return nil
}

// Overhead estimates the fixed cost of one bracket measurement: the smallest delta
// observed between two back-to-back reads over the given number of rounds.
func Overhead(rounds int) uint64 {
	if rounds <= 0 {
		rounds = constants.ClockOverheadRounds
	}

	ovhd := uint64(math.MaxUint64)

	for range rounds {
		start := now()

		delta := now() - start
		if delta < ovhd {
			ovhd = delta
		}
	}

	return ovhd
}
