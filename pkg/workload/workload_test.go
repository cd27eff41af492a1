package workload

import (
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

func TestDefaults_Order(t *testing.T) {
	expected := []string{
		"Pure Computation",
		"Regular Branch Pattern",
		"Pseudo-Random Branch Pattern",
		"Nested Branch Pattern",
		"Memory + Branch Mixed",
		"High-Frequency Branches",
	}

	assert.Equal(t, expected, Names())

	workloads := Defaults()
	assert.Equal(t, len(expected), len(workloads))

	for i, w := range workloads {
		assert.Equal(t, expected[i], w.Name())
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
		err      error
	}{
		{name: "label", query: "Nested Branch Pattern", expected: "Nested Branch Pattern"},
		{name: "label case-insensitive", query: "pure computation", expected: "Pure Computation"},
		{name: "slug", query: "memory-branch-mixed", expected: "Memory + Branch Mixed"},
		{name: "slug with dash in label", query: "pseudo-random-branch-pattern", expected: "Pseudo-Random Branch Pattern"},
		{name: "unknown", query: "vector", err: sentinel.ErrWorkloadNotFound},
		{name: "empty", query: " ", err: sentinel.ErrParamCannotBeEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Lookup(tt.query)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, w.Name())
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "memory-branch-mixed", Slug("Memory + Branch Mixed"))
	assert.Equal(t, "high-frequency-branches", Slug("High-Frequency Branches"))
}

func TestMeasure(t *testing.T) {
	for _, w := range Defaults() {
		samples, err := Measure(w, 200, 50)
		assert.NoError(t, err)
		assert.Equal(t, 200, len(samples))
	}
}

func TestMeasure_ZeroIterations(t *testing.T) {
	_, err := Measure(NewPureComputation(), 0, 10)
	assert.True(t, errors.Is(err, sentinel.ErrInvalidInput))
}

func TestPseudoRandomBranches_Deterministic(t *testing.T) {
	a := NewPseudoRandomBranches()
	b := NewPseudoRandomBranches()

	for range 100 {
		assert.Equal(t, a.next(), b.next())
	}

	// first LCG step from 12345
	seed := uint32(12345)
	seed = seed*1664525 + 1013904223

	c := NewPseudoRandomBranches()
	assert.Equal(t, seed, c.next())
}

func TestHighFrequencyBranches_Count(t *testing.T) {
	before := Sink()

	NewHighFrequencyBranches().Step(0)

	assert.Equal(t, 28, Sink()-before)
}

func TestMemoryBranchMixed_Table(t *testing.T) {
	w := NewMemoryBranchMixed()
	assert.Equal(t, 0, w.table[0])
	assert.Equal(t, 99, w.table[99])
	assert.Equal(t, 23, w.table[1023])

	before := Sink()

	// i=0: val1 = table[0] = 0, val2 = table[0] = 0 -> else branch, -table[256] = -56
	w.Step(0)

	assert.Equal(t, -56, Sink()-before)
}
