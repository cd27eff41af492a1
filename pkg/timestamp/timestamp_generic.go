//go:build ((!amd64 && !arm64) || noasm) && !(linux || darwin || freebsd || netbsd || openbsd)

package timestamp

import "time"

const (
	source = "time.monotonic"
	unit   = UnitNanoseconds
)

// epoch is the reference point for counter values.
var epoch = time.Now()

func now() uint64 {
	return uint64(time.Since(epoch).Nanoseconds())
}

func frequency() uint64 {
	return 1_000_000_000
}

func checkSource() error {
	return nil
}
