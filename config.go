package jitterbench

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/hyp3rd/ewrap"
	"gopkg.in/yaml.v3"

	"github.com/hyp3rd/jitterbench/internal/constants"
	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

// configValidate is shared; validator caches struct metadata per instance.
var configValidate = validator.New()

// Config holds the measurement settings of a Bench.
type Config struct {
	// Iterations is the number of timed iterations (N) per workload.
	Iterations int `json:"iterations" yaml:"iterations" validate:"gte=1"`
	// Warmup is the number of untimed iterations (M) run before measuring.
	Warmup int `json:"warmup" yaml:"warmup" validate:"gte=0"`
	// CPU is the logical CPU the measuring thread is bound to, -1 for none.
	CPU int `json:"cpu" yaml:"cpu" validate:"gte=-1"`
	// LockThread keeps the measuring goroutine on one OS thread.
	LockThread bool `json:"lock_thread" yaml:"lock_thread"`
	// DisableGC turns the garbage collector off for the duration of a run.
	DisableGC bool `json:"disable_gc" yaml:"disable_gc"`
	// KeepSamples stores the raw sample set with each result.
	KeepSamples bool `json:"keep_samples" yaml:"keep_samples"`
}

// NewConfig returns a `Config` with default values:
//   - `Iterations` is 2000
//   - `Warmup` is 500
//   - `CPU` is -1, no pinning
//   - `LockThread` and `DisableGC` are on
//   - `KeepSamples` is off
func NewConfig() Config {
	return Config{
		Iterations: constants.DefaultIterations,
		Warmup:     constants.DefaultWarmupIterations,
		CPU:        constants.NoCPUPinning,
		LockThread: true,
		DisableGC:  true,
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, ewrap.Wrapf(err, "reading config %s", path)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, ewrap.Wrapf(sentinel.ErrInvalidConfig, "parsing %s: %v", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	err := configValidate.Struct(c)
	if err != nil {
		return ewrap.Wrapf(sentinel.ErrInvalidConfig, "%v", err)
	}

	return nil
}
