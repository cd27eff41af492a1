// Package sentinel provides standardized error definitions for the jitterbench system.
// This package centralizes all error types used across the jitterbench components,
// ensuring consistent error handling and messaging throughout the application.
//
// The errors defined here cover various scenarios including:
// - Invalid measurement input (empty or mis-declared sample sets)
// - Clock capability failures detected at startup
// - Configuration and lookup failures (workloads, serializers, stored results)
// - Outer surfaces (report parsing, management HTTP shutdown)
//
// All errors are created using the ewrap package to provide enhanced error
// wrapping and context capabilities.
package sentinel

import (
	"github.com/hyp3rd/ewrap"
)

var (
	// ErrInvalidInput is returned when a sample set is empty or its declared length
	// does not match the length of the buffer.
	ErrInvalidInput = ewrap.New("invalid input")

	// ErrSampleSetFull is returned when a sample is recorded past the capacity of a sample set.
	ErrSampleSetFull = ewrap.New("sample set is full")

	// ErrClockUnavailable is returned when the underlying clock cannot be read.
	ErrClockUnavailable = ewrap.New("clock unavailable")

	// ErrClockNotMonotonic is returned when back-to-back clock reads go backwards.
	ErrClockNotMonotonic = ewrap.New("clock is not monotonic")

	// ErrAffinityUnsupported is returned when CPU pinning is requested on a platform without it.
	ErrAffinityUnsupported = ewrap.New("cpu affinity unsupported")

	// ErrInvalidConfig is returned when the benchmark configuration fails validation.
	ErrInvalidConfig = ewrap.New("invalid config")

	// ErrWorkloadNotFound is returned when a workload is not found.
	ErrWorkloadNotFound = ewrap.New("workload not found")

	// ErrResultNotFound is returned when a stored result is not found.
	ErrResultNotFound = ewrap.New("result not found")

	// ErrParamCannotBeEmpty is returned when a parameter cannot be empty.
	ErrParamCannotBeEmpty = ewrap.New("param cannot be empty")

	// ErrSerializerNotFound is returned when a serializer is not found.
	ErrSerializerNotFound = ewrap.New("serializer not found")

	// ErrNilClient is returned when a nil client is passed to a backend.
	ErrNilClient = ewrap.New("nil client")

	// ErrMalformedReport is returned when a text report contains no parsable summary block.
	ErrMalformedReport = ewrap.New("malformed report")

	// ErrMgmtHTTPShutdownTimeout is returned when the management HTTP server fails to shutdown before context deadline.
	ErrMgmtHTTPShutdownTimeout = ewrap.New("management http shutdown timeout")
)
