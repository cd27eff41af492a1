package stats

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

// SampleSet is a pre-sized, single-owner buffer of per-iteration timings.
// It is filled once and never grows past the capacity given to NewSampleSet.
type SampleSet struct {
	values []uint64
}

// NewSampleSet allocates a sample set holding exactly n samples.
func NewSampleSet(n int) (*SampleSet, error) {
	if n < 1 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidInput, "sample set size %d", n)
	}

	return &SampleSet{values: make([]uint64, 0, n)}, nil
}

// Record appends one timing.
func (s *SampleSet) Record(delta uint64) error {
	if len(s.values) == cap(s.values) {
		return ewrap.Wrapf(sentinel.ErrSampleSetFull, "capacity %d", cap(s.values))
	}

	s.values = append(s.values, delta)

	return nil
}

// Len returns the number of recorded samples.
func (s *SampleSet) Len() int { return len(s.values) }

// Cap returns the size the sample set was created with.
func (s *SampleSet) Cap() int { return cap(s.values) }

// Full reports whether every slot has been recorded.
func (s *SampleSet) Full() bool { return len(s.values) == cap(s.values) }

// Samples returns the recorded samples. The slice aliases the set's buffer.
func (s *SampleSet) Samples() []uint64 { return s.values }

// Summarize summarizes the recorded samples. The declared length is the set's
// capacity, so a partially filled set is rejected.
func (s *SampleSet) Summarize() (Summary, error) {
	return SummarizeN(s.values, cap(s.values))
}
