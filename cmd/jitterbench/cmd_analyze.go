package main

import (
	"bytes"
	"os"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"

	"github.com/hyp3rd/jitterbench/pkg/report"
)

type analyzeOptions struct {
	root *rootOptions

	outDir  string
	csvName string
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{root: root}

	cmd := &cobra.Command{
		Use:   "analyze <report>",
		Short: "Score a saved text report and write an experiment directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.outDir, "out", "result", "directory the experiment directory is created in")
	cmd.Flags().StringVarP(&opts.csvName, "output", "o", report.DefaultCSVName, "analysis CSV file name")

	return cmd
}

func (o *analyzeOptions) run(cmd *cobra.Command, input string) error {
	logger, err := newLogger(cmd, o.root.logLevel)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return ewrap.Wrapf(err, "reading %s", input)
	}

	entries, err := report.Parse(bytes.NewReader(raw))
	if err != nil {
		return ewrap.Wrapf(err, "parsing %s", input)
	}

	logger.Printf("parsed %d test cases from %s", len(entries), input)

	exp, err := report.WriteExperiment(o.outDir, input, raw, entries, report.WithCSVName(o.csvName))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	cmd.Printf("Successfully parsed %d test cases\n", len(entries))
	cmd.Printf("Result exported to: %s\n", exp.CSVFile)

	err = report.WriteRanking(out, report.Score(entries))
	if err != nil {
		return err
	}

	cmd.Printf("\nExperiment completed. All files saved to: %s\n", exp.Dir)

	return nil
}
