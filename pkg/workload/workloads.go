package workload

// PureComputation is a fixed arithmetic sequence with no data-dependent branches.
// It is the baseline the branch workloads are compared against.
type PureComputation struct{}

// NewPureComputation returns a PureComputation workload.
func NewPureComputation() *PureComputation { return &PureComputation{} }

// Name implements Workload.
func (*PureComputation) Name() string { return "Pure Computation" }

// Warmup implements Workload.
func (*PureComputation) Warmup(int) {
	a, b := 42, 17
	Observe(a + b + a*b - (a % 7))
}

// Step implements Workload.
func (*PureComputation) Step(i int) {
	a := 42 + (i & 0x7)
	b := 17 + (i & 0x3)
	c := a + b
	d := a * b
	e := d - c
	f := e % 13
	g := f ^ a
	Observe(g)
}

// RegularBranches is a four-way if/else chain driven by i%4, a pattern every
// modern predictor learns.
type RegularBranches struct{}

// NewRegularBranches returns a RegularBranches workload.
func NewRegularBranches() *RegularBranches { return &RegularBranches{} }

// Name implements Workload.
func (*RegularBranches) Name() string { return "Regular Branch Pattern" }

// Warmup implements Workload.
func (*RegularBranches) Warmup(i int) {
	x := i % 4
	if x == 0 {
		Observe(1)
	} else if x == 1 {
		Observe(2)
	} else {
		Observe(3)
	}
}

// Step implements Workload.
func (*RegularBranches) Step(i int) {
	x := i % 4
	if x == 0 {
		Observe(1)
	} else if x == 1 {
		Observe(2)
	} else if x == 2 {
		Observe(3)
	} else {
		Observe(4)
	}
}

const (
	lcgSeed       = 12345
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// PseudoRandomBranches branches on the output of a linear congruential generator,
// which is hard to predict. The generator state carries over from warmup into
// measurement.
type PseudoRandomBranches struct {
	seed uint32
}

// NewPseudoRandomBranches returns a PseudoRandomBranches workload seeded with 12345.
func NewPseudoRandomBranches() *PseudoRandomBranches {
	return &PseudoRandomBranches{seed: lcgSeed}
}

// Name implements Workload.
func (*PseudoRandomBranches) Name() string { return "Pseudo-Random Branch Pattern" }

func (w *PseudoRandomBranches) next() uint32 {
	w.seed = w.seed*lcgMultiplier + lcgIncrement

	return w.seed
}

// Warmup implements Workload.
func (w *PseudoRandomBranches) Warmup(int) {
	if w.next()&0x1 != 0 {
		Observe(1)
	} else {
		Observe(2)
	}
}

// Step implements Workload.
func (w *PseudoRandomBranches) Step(int) {
	x := w.next() % 7
	if x < 2 {
		Observe(1)
	} else if x < 4 {
		Observe(2)
	} else if x < 6 {
		Observe(3)
	} else {
		Observe(4)
	}
}

// NestedBranches is a two-level branch tree over a period-16 sequence.
type NestedBranches struct{}

// NewNestedBranches returns a NestedBranches workload.
func NewNestedBranches() *NestedBranches { return &NestedBranches{} }

// Name implements Workload.
func (*NestedBranches) Name() string { return "Nested Branch Pattern" }

// Warmup implements Workload.
func (*NestedBranches) Warmup(i int) {
	x := i % 8
	if x > 4 {
		if x > 6 {
			Observe(1)
		} else {
			Observe(2)
		}
	} else {
		if x > 2 {
			Observe(3)
		} else {
			Observe(4)
		}
	}
}

// Step implements Workload.
func (*NestedBranches) Step(i int) {
	x := (i*7 + 3) % 16
	if x > 8 {
		if x > 12 {
			Observe(pick(x&0x1 != 0, 1, 2))
		} else {
			Observe(pick(x&0x2 != 0, 3, 4))
		}
	} else {
		if x > 4 {
			Observe(pick(x&0x4 != 0, 5, 6))
		} else {
			Observe(pick(x&0x8 != 0, 7, 8))
		}
	}
}

func pick(cond bool, a, b int) int {
	if cond {
		return a
	}

	return b
}

const memoryTableSize = 1024

// MemoryBranchMixed loads two table entries and branches on their comparison,
// so the branch outcome depends on memory contents.
type MemoryBranchMixed struct {
	table [memoryTableSize]int
}

// NewMemoryBranchMixed returns a MemoryBranchMixed workload with table[i] = i % 100.
func NewMemoryBranchMixed() *MemoryBranchMixed {
	w := &MemoryBranchMixed{}
	for i := range w.table {
		w.table[i] = i % 100
	}

	return w
}

// Name implements Workload.
func (*MemoryBranchMixed) Name() string { return "Memory + Branch Mixed" }

// Warmup implements Workload.
func (w *MemoryBranchMixed) Warmup(i int) {
	val := w.table[i%64]
	if val > 50 {
		Observe(val)
	} else {
		Observe(-val)
	}
}

// Step implements Workload.
func (w *MemoryBranchMixed) Step(i int) {
	val1 := w.table[i%128]
	val2 := w.table[(i*3)%256]

	if val1 > val2 {
		Observe(w.table[(val1+val2)%512])
	} else {
		Observe(-w.table[(val1-val2+256)%512])
	}
}

// HighFrequencyBranches runs a short inner loop with three bit-tested branches
// per iteration.
type HighFrequencyBranches struct{}

// NewHighFrequencyBranches returns a HighFrequencyBranches workload.
func NewHighFrequencyBranches() *HighFrequencyBranches { return &HighFrequencyBranches{} }

// Name implements Workload.
func (*HighFrequencyBranches) Name() string { return "High-Frequency Branches" }

// Warmup implements Workload.
func (*HighFrequencyBranches) Warmup(int) {
	for j := range 5 {
		if j&1 != 0 {
			Observe(1)
		}
	}
}

// Step implements Workload.
func (*HighFrequencyBranches) Step(int) {
	count := 0

	for j := range 8 {
		if j&1 != 0 {
			count++
		}

		if j&2 != 0 {
			count += 2
		}

		if j&4 != 0 {
			count += 4
		}
	}

	Observe(count)
}
