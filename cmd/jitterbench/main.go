// Command jitterbench measures CPU timing predictability under a set of branch
// and memory access patterns, and analyzes saved reports.
package main

import (
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "jitterbench",
		Short:        "Measure how deterministically a CPU runs small branchy workloads",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn",
		"log level: debug, info, warn or error")

	rootCmd.AddCommand(newRunCmd(opts), newAnalyzeCmd(opts))

	return rootCmd
}

// newLogger returns a Printf logger backed by slog at the requested level.
func newLogger(cmd *cobra.Command, level string) (*log.Logger, error) {
	var lvl slog.Level

	err := lvl.UnmarshalText([]byte(strings.ToUpper(level)))
	if err != nil {
		return nil, ewrap.Wrapf(err, "invalid --log-level %q", level)
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})

	return slog.NewLogLogger(handler, slog.LevelInfo), nil
}
