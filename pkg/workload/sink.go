package workload

// sink receives every value a payload produces. Writing to a package-level
// variable through a non-inlined function keeps the compiler from proving the
// payload dead and removing it.
var sink int

// Observe publishes v to the sink.
//
//go:noinline
func Observe(v int) {
	sink += v
}

// Sink returns the accumulated sink value.
func Sink() int {
	return sink
}
