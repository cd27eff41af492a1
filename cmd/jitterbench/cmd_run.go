package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/hyp3rd/jitterbench"
	"github.com/hyp3rd/jitterbench/internal/constants"
	"github.com/hyp3rd/jitterbench/internal/libs/serializer"
	"github.com/hyp3rd/jitterbench/internal/sentinel"
	"github.com/hyp3rd/jitterbench/pkg/backend"
	redisstore "github.com/hyp3rd/jitterbench/pkg/backend/redis"
	"github.com/hyp3rd/jitterbench/pkg/backend/rediscluster"
	"github.com/hyp3rd/jitterbench/pkg/middleware"
	"github.com/hyp3rd/jitterbench/pkg/report"
	"github.com/hyp3rd/jitterbench/pkg/workload"
	"github.com/hyp3rd/jitterbench/types"
)

const shutdownTimeout = 5 * time.Second

type runOptions struct {
	root *rootOptions

	configPath  string
	iterations  int
	warmup      int
	cpu         int
	unlocked    bool
	keepGC      bool
	keepSamples bool
	workloads   []string
	format      string
	redisAddr   string
	clusterAddr []string
	serializer  string
	mgmtAddr    string
	telemetry   string
	verbose     bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{root: root}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Measure the workloads and print one summary block per workload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return opts.run(ctx, cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.IntVarP(&opts.iterations, "iterations", "n", 0, "timed iterations per workload")
	flags.IntVar(&opts.warmup, "warmup", 0, "untimed warmup iterations per workload")
	flags.IntVar(&opts.cpu, "cpu", -1, "logical CPU to bind the measuring thread to, -1 for none")
	flags.BoolVar(&opts.unlocked, "no-lock-thread", false, "do not lock the measuring goroutine to an OS thread")
	flags.BoolVar(&opts.keepGC, "keep-gc", false, "leave the garbage collector enabled while measuring")
	flags.BoolVar(&opts.keepSamples, "keep-samples", false, "store raw samples with each result")
	flags.StringSliceVarP(&opts.workloads, "workload", "w", nil, "workload label or slug to run, repeatable (default all)")
	flags.StringVarP(&opts.format, "format", "f", types.FormatText.String(), "output format: text, json or csv")
	flags.StringVar(&opts.redisAddr, "redis", "", "store results in redis at this address or redis:// URL")
	flags.StringSliceVar(&opts.clusterAddr, "redis-cluster", nil, "store results in the redis cluster seeded by these addresses")
	flags.StringVar(&opts.serializer, "serializer", constants.DefaultRedisSerializer,
		"redis result encoding: "+strings.Join(serializer.Names(), ", "))
	flags.StringVar(&opts.mgmtAddr, "mgmt", "", "serve the management API on this address until interrupted")
	flags.StringVar(&opts.telemetry, "telemetry", "none", "telemetry exporter: none or stdout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every service call")

	return cmd
}

// config resolves the file, then the flags the user set explicitly.
func (o *runOptions) config(cmd *cobra.Command) (jitterbench.Config, error) {
	cfg := jitterbench.NewConfig()

	if o.configPath != "" {
		var err error

		cfg, err = jitterbench.LoadConfig(o.configPath)
		if err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("iterations") {
		cfg.Iterations = o.iterations
	}

	if flags.Changed("warmup") {
		cfg.Warmup = o.warmup
	}

	if flags.Changed("cpu") {
		cfg.CPU = o.cpu
	}

	if o.unlocked {
		cfg.LockThread = false
	}

	if o.keepGC {
		cfg.DisableGC = false
	}

	if o.keepSamples {
		cfg.KeepSamples = true
	}

	return cfg, cfg.Validate()
}

func (o *runOptions) selected() ([]workload.Workload, error) {
	if len(o.workloads) == 0 {
		return workload.Defaults(), nil
	}

	selected := make([]workload.Workload, 0, len(o.workloads))

	for _, name := range o.workloads {
		w, err := workload.Lookup(name)
		if err != nil {
			return nil, err
		}

		selected = append(selected, w)
	}

	return selected, nil
}

// redisConn is what the run command needs from a redis or cluster store.
type redisConn interface {
	Ping(ctx context.Context) error
	Close() error
}

func (o *runOptions) connect() (redis.UniversalClient, redisConn, error) {
	if len(o.clusterAddr) > 0 {
		conn, err := rediscluster.New(rediscluster.WithAddrs(o.clusterAddr...))
		if err != nil {
			return nil, nil, err
		}

		return conn.Client, conn, nil
	}

	conn, err := redisstore.New(redisstore.WithAddr(o.redisAddr))
	if err != nil {
		return nil, nil, err
	}

	return conn.Client, conn, nil
}

func (o *runOptions) store(ctx context.Context, ser serializer.ISerializer, logger *log.Logger) (backend.IBackend, func(), error) {
	if o.redisAddr == "" && len(o.clusterAddr) == 0 {
		store, err := backend.NewInMemory()

		return store, func() {}, err
	}

	client, conn, err := o.connect()
	if err != nil {
		return nil, nil, err
	}

	closeConn := func() { _ = conn.Close() }

	err = conn.Ping(ctx)
	if err != nil {
		closeConn()

		return nil, nil, err
	}

	store, err := backend.NewRedis(backend.WithRedisClient(client), backend.WithSerializer(ser))
	if err != nil {
		closeConn()

		return nil, nil, err
	}

	logger.Printf("storing results in redis with %s encoding", o.serializer)

	return store, closeConn, nil
}

func (o *runOptions) run(ctx context.Context, cmd *cobra.Command) error {
	format := types.Format(o.format)
	if !format.Valid() {
		return ewrap.Wrapf(sentinel.ErrInvalidConfig, "unknown format %q", o.format)
	}

	logger, err := newLogger(cmd, o.root.logLevel)
	if err != nil {
		return err
	}

	ser, err := serializer.New(o.serializer)
	if err != nil {
		return ewrap.Wrap(err, "--serializer")
	}

	cfg, err := o.config(cmd)
	if err != nil {
		return err
	}

	workloads, err := o.selected()
	if err != nil {
		return err
	}

	store, closeStore, err := o.store(ctx, ser, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	bench, err := jitterbench.New(
		jitterbench.WithConfig(cfg),
		jitterbench.WithStore(store),
		jitterbench.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	svc, shutdownTelemetry, err := o.decorate(bench, cmd, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry()

	results, err := jitterbench.RunSuite(ctx, svc, workloads...)
	if err != nil {
		return err
	}

	err = writeResults(cmd.OutOrStdout(), format, cfg, results)
	if err != nil {
		return err
	}

	if o.mgmtAddr == "" {
		return nil
	}

	return serveMgmt(ctx, cmd, o.mgmtAddr, svc)
}

// decorate wraps the bench with the requested middlewares.
func (o *runOptions) decorate(bench *jitterbench.Bench, cmd *cobra.Command, logger *log.Logger) (jitterbench.Service, func(), error) {
	var svc jitterbench.Service = bench

	shutdown := func() {}

	if o.verbose {
		svc = jitterbench.ApplyMiddleware(svc, func(next jitterbench.Service) jitterbench.Service {
			return middleware.NewLoggingMiddleware(next, logger)
		})
	}

	switch o.telemetry {
	case "", "none":
	case "stdout":
		tel, err := newStdoutTelemetry(cmd.ErrOrStderr())
		if err != nil {
			return nil, nil, err
		}

		svc, err = tel.wrap(svc)
		if err != nil {
			return nil, nil, err
		}

		shutdown = func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			_ = tel.shutdown(ctx)
		}
	default:
		return nil, nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "unknown telemetry exporter %q", o.telemetry)
	}

	return svc, shutdown, nil
}

func writeResults(w io.Writer, format types.Format, cfg jitterbench.Config, results []*types.Result) error {
	switch format {
	case types.FormatJSON:
		return report.WriteJSON(w, results)
	case types.FormatCSV:
		return report.WriteCSV(w, report.FromResults(results))
	default:
		return report.WriteText(w, cfg.Iterations, cfg.Warmup, results)
	}
}

func serveMgmt(ctx context.Context, cmd *cobra.Command, addr string, svc jitterbench.Service) error {
	srv := jitterbench.NewManagementHTTPServer(addr)

	err := srv.Start(ctx, svc)
	if err != nil {
		return err
	}

	cmd.PrintErrf("management API listening on %s\n", srv.Address())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
