package jitterbench

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/goccy/go-json"
	fiber "github.com/gofiber/fiber/v3"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
	"github.com/hyp3rd/jitterbench/pkg/report"
	"github.com/hyp3rd/jitterbench/pkg/timestamp"
	"github.com/hyp3rd/jitterbench/pkg/workload"
)

// ManagementHTTPOption configures the management HTTP server.
type ManagementHTTPOption func(*ManagementHTTPServer)

// ManagementHTTPServer exposes a Service over HTTP: its configuration, the
// clock in use, stored results and their scores.
type ManagementHTTPServer struct {
	mu       sync.Mutex
	addr     string
	app      *fiber.App
	authFunc func(fiber.Ctx) error
	ln       net.Listener
	started  bool
}

// WithMgmtAuth sets an auth function (return error to block).
func WithMgmtAuth(fn func(fiber.Ctx) error) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.authFunc = fn }
}

const (
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

// NewManagementHTTPServer builds an HTTP server holder (lazy start).
func NewManagementHTTPServer(addr string, opts ...ManagementHTTPOption) *ManagementHTTPServer {
	app := fiber.New(fiber.Config{
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	srv := &ManagementHTTPServer{
		addr: addr,
		app:  app,
	}
	for _, opt := range opts { // apply options
		opt(srv)
	}

	return srv
}

// Start mounts the routes and starts serving in the background. It is
// idempotent. ctx bounds the store calls and measurements made by handlers.
func (s *ManagementHTTPServer) Start(ctx context.Context, svc Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.mountRoutes(ctx, svc)

	lc := net.ListenConfig{}

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return ewrap.Wrap(err, "mgmt listen")
	}

	s.ln = ln

	go func() { // serve errors surface as failed requests; Shutdown ends the loop
		_ = s.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	s.started = true

	return nil
}

// Address returns the bound address (useful when passing ":0" for ephemeral port). Empty if not started yet.
func (s *ManagementHTTPServer) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return ""
	}

	return s.ln.Addr().String()
}

// Shutdown stops the server.
func (s *ManagementHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	ch := make(chan error, 1)

	go func() {
		ch <- s.app.Shutdown()
	}()

	select {
	case <-ctx.Done():
		return sentinel.ErrMgmtHTTPShutdownTimeout
	case err := <-ch:
		s.started = false

		return err
	}
}

func (s *ManagementHTTPServer) mountRoutes(ctx context.Context, svc Service) {
	useAuth := s.wrapAuth
	s.registerBasic(useAuth, svc)
	s.registerResults(ctx, useAuth, svc)
	s.registerControl(ctx, useAuth, svc)
}

// wrapAuth returns an auth-wrapped handler if authFunc provided.
func (s *ManagementHTTPServer) wrapAuth(handler fiber.Handler) fiber.Handler { //nolint:ireturn
	if s.authFunc == nil {
		return handler
	}

	return func(fiberCtx fiber.Ctx) error {
		authErr := s.authFunc(fiberCtx)
		if authErr != nil {
			return authErr
		}

		return handler(fiberCtx)
	}
}

func (s *ManagementHTTPServer) registerBasic(useAuth func(fiber.Handler) fiber.Handler, svc Service) {
	s.app.Get("/health", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.SendString("ok") }))
	s.app.Get("/config", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.JSON(svc.Config()) }))
	s.app.Get("/clock", useAuth(func(fiberCtx fiber.Ctx) error {
		return fiberCtx.JSON(fiber.Map{
			"source":    timestamp.Source(),
			"unit":      timestamp.CounterUnit().String(),
			"frequency": timestamp.Frequency(),
			"overhead":  timestamp.Overhead(0),
		})
	}))
	s.app.Get("/workloads", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.JSON(workload.Names()) }))
}

func (s *ManagementHTTPServer) registerResults(ctx context.Context, useAuth func(fiber.Handler) fiber.Handler, svc Service) {
	s.app.Get("/results", useAuth(func(fiberCtx fiber.Ctx) error {
		results, err := svc.Results(ctx)
		if err != nil {
			return err
		}

		return fiberCtx.JSON(results)
	}))
	s.app.Get("/results/:id", useAuth(func(fiberCtx fiber.Ctx) error {
		result, err := svc.Result(ctx, fiberCtx.Params("id"))
		if err != nil {
			if errors.Is(err, sentinel.ErrResultNotFound) {
				return fiberCtx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}

			return err
		}

		return fiberCtx.JSON(result)
	}))
	s.app.Get("/scores", useAuth(func(fiberCtx fiber.Ctx) error {
		results, err := svc.Results(ctx)
		if err != nil {
			return err
		}

		return fiberCtx.JSON(report.Rank(report.Score(report.FromResults(results))))
	}))
}

func (s *ManagementHTTPServer) registerControl(ctx context.Context, useAuth func(fiber.Handler) fiber.Handler, svc Service) {
	s.app.Post("/run/:workload", useAuth(func(fiberCtx fiber.Ctx) error {
		w, err := workload.Lookup(fiberCtx.Params("workload"))
		if err != nil {
			return fiberCtx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		result, err := svc.Run(ctx, w)
		if err != nil {
			return err
		}

		return fiberCtx.Status(fiber.StatusCreated).JSON(result)
	}))
}
