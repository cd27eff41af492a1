package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyp3rd/ewrap"
)

const (
	experimentStampLayout = "20060102_150405"
	experimentDateLayout  = "2006-01-02"
	// DefaultCSVName is the analysis file name used when none is given.
	DefaultCSVName = "rt_analysis.csv"
)

// Experiment lists the files written by WriteExperiment.
type Experiment struct {
	Dir      string
	RawFile  string
	CSVFile  string
	InfoFile string
}

// ExperimentOption configures WriteExperiment.
type ExperimentOption func(*experimentConfig)

type experimentConfig struct {
	csvName string
	at      time.Time
}

// WithCSVName sets the analysis file name. Only its base name is used.
func WithCSVName(name string) ExperimentOption {
	return func(c *experimentConfig) {
		if name != "" {
			c.csvName = filepath.Base(name)
		}
	}
}

// WithTimestamp fixes the experiment time instead of using the current time.
func WithTimestamp(at time.Time) ExperimentOption {
	return func(c *experimentConfig) {
		c.at = at
	}
}

// WriteExperiment creates root/experiment_<stamp> holding a copy of the raw
// report, the CSV analysis of entries and an info file describing both.
// inputName is recorded in the info file only.
func WriteExperiment(root, inputName string, raw []byte, entries []Entry, opts ...ExperimentOption) (*Experiment, error) {
	cfg := experimentConfig{csvName: DefaultCSVName, at: time.Now()}
	for _, opt := range opts {
		opt(&cfg)
	}

	stamp := cfg.at.Format(experimentStampLayout)
	dir := filepath.Join(root, "experiment_"+stamp)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, ewrap.Wrapf(err, "creating %s", dir)
	}

	exp := &Experiment{
		Dir:      dir,
		RawFile:  filepath.Join(dir, "benchmark_raw_"+stamp+".txt"),
		CSVFile:  filepath.Join(dir, cfg.csvName),
		InfoFile: filepath.Join(dir, "experiment_info.txt"),
	}

	err = os.WriteFile(exp.RawFile, raw, 0o644)
	if err != nil {
		return nil, ewrap.Wrapf(err, "writing %s", exp.RawFile)
	}

	var csvBuf bytes.Buffer

	err = WriteCSV(&csvBuf, entries)
	if err != nil {
		return nil, err
	}

	err = os.WriteFile(exp.CSVFile, csvBuf.Bytes(), 0o644)
	if err != nil {
		return nil, ewrap.Wrapf(err, "writing %s", exp.CSVFile)
	}

	var info strings.Builder

	fmt.Fprintf(&info, "jitterbench Real-time Analysis Experiment\n%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(&info, "Date: %s\n", cfg.at.Format(experimentDateLayout))
	fmt.Fprintf(&info, "Timestamp: %s\n", stamp)
	fmt.Fprintf(&info, "Input File: %s\n", inputName)
	fmt.Fprintf(&info, "Test Cases: %d\n", len(entries))
	fmt.Fprintf(&info, "Generated Files:\n")
	fmt.Fprintf(&info, "  - Raw Data: %s\n", filepath.Base(exp.RawFile))
	fmt.Fprintf(&info, "  - Analysis: %s\n", cfg.csvName)
	fmt.Fprintf(&info, "\nExperiment Directory: %s\n", dir)

	err = os.WriteFile(exp.InfoFile, []byte(info.String()), 0o644)
	if err != nil {
		return nil, ewrap.Wrapf(err, "writing %s", exp.InfoFile)
	}

	return exp, nil
}
