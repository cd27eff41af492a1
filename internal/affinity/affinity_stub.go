//go:build !linux

package affinity

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

func bind(cpu int) (func(), error) {
	return func() {}, ewrap.Wrapf(sentinel.ErrAffinityUnsupported, "cpu %d", cpu)
}
