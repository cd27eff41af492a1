package types

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/hyp3rd/jitterbench/pkg/stats"
)

// Result is the outcome of measuring one workload: its configuration, the counter
// it was measured with, and the summary of its sample set.
type Result struct {
	ID         string        `json:"id"`                // fingerprint of label, start time and samples
	Label      string        `json:"label"`             // workload label
	Source     string        `json:"source"`            // counter name, e.g. "rdtsc"
	Unit       string        `json:"unit"`              // counter unit, e.g. "cycles"
	Iterations int           `json:"iterations"`        // timed iterations (N)
	Warmup     int           `json:"warmup"`            // discarded warmup iterations (M)
	StartedAt  time.Time     `json:"started_at"`        // wall clock start of the run
	Duration   time.Duration `json:"duration"`          // wall clock duration of the run
	Summary    stats.Summary `json:"summary"`           // statistics of the sample set
	Samples    []uint64      `json:"samples,omitempty"` // raw sample set, kept only on request
}

// Fingerprint returns a stable 64-bit hex id derived from the label, the start time
// and the raw samples.
func Fingerprint(label string, startedAt time.Time, samples []uint64) string {
	digest := xxhash.New()
	_, _ = digest.WriteString(label)

	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(startedAt.UnixNano()))
	_, _ = digest.Write(buf[:])

	for _, sample := range samples {
		binary.LittleEndian.PutUint64(buf[:], sample)
		_, _ = digest.Write(buf[:])
	}

	return strconv.FormatUint(digest.Sum64(), 16)
}

// Clone returns a deep copy of the result.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}

	out := *r
	if r.Samples != nil {
		out.Samples = append([]uint64(nil), r.Samples...)
	}

	return &out
}
