//go:build linux

package affinity

import (
	"github.com/hyp3rd/ewrap"
	"golang.org/x/sys/unix"
)

func bind(cpu int) (func(), error) {
	var previous unix.CPUSet

	err := unix.SchedGetaffinity(0, &previous)
	if err != nil {
		return func() {}, ewrap.Wrap(err, "reading cpu affinity")
	}

	var set unix.CPUSet
	set.Set(cpu)

	err = unix.SchedSetaffinity(0, &set)
	if err != nil {
		return func() {}, ewrap.Wrapf(err, "binding thread to cpu %d", cpu)
	}

	return func() {
		_ = unix.SchedSetaffinity(0, &previous)
	}, nil
}
