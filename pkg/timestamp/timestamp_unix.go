//go:build ((!amd64 && !arm64) || noasm) && (linux || darwin || freebsd || netbsd || openbsd)

package timestamp

import (
	"golang.org/x/sys/unix"
)

const (
	source = "clock_monotonic"
	unit   = UnitNanoseconds
)

const nsPerSecond = 1_000_000_000

func now() uint64 {
	var ts unix.Timespec

	// the startup check covers the error path; a failing read yields 0
	_ = unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)

	return uint64(ts.Sec)*nsPerSecond + uint64(ts.Nsec)
}

func frequency() uint64 {
	return nsPerSecond
}

func checkSource() error {
	var ts unix.Timespec

	return unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
}
