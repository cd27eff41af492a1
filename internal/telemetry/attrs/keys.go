// Package attrs provides reusable OpenTelemetry attribute key constants
// to avoid duplication across middlewares.
package attrs

const (
	// AttrWorkload is the label of the workload being measured.
	AttrWorkload = "workload"
	// AttrIterations is the number of timed iterations in a run.
	AttrIterations = "iterations"
	// AttrWarmup is the number of untimed warmup iterations in a run.
	AttrWarmup = "warmup"
	// AttrSource names the timestamp source that produced the samples.
	AttrSource = "clock.source"
	// AttrUnit is the unit of the samples.
	AttrUnit = "clock.unit"
	// AttrResultID is the fingerprint of a stored result.
	AttrResultID = "result.id"
)
