// Package bootstrap runs a process until it finishes or is interrupted, then releases its resources.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 10 * time.Second

// App runs one function and the shutdown hooks registered around it.
type App struct {
	shutdownTimeout time.Duration
	signals         []os.Signal

	mu    sync.Mutex
	hooks []func(ctx context.Context) error
	done  bool
}

type Option func(*App)

func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) {
		a.shutdownTimeout = d
	}
}

// WithSignals replaces the signals that stop the app, os.Interrupt and SIGTERM by default.
func WithSignals(signals ...os.Signal) Option {
	return func(a *App) {
		a.signals = signals
	}
}

func New(opts ...Option) *App {
	a := &App{
		shutdownTimeout: defaultShutdownTimeout,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddShutdownHook registers a function to call during shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run executes run with a context that is cancelled on a signal or when ctx is done.
// The shutdown hooks run exactly once, after a signal or after run returns, whichever is first.
// On a signal, Run waits for run to return within the shutdown timeout.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, a.signals...)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	select {
	case err := <-errCh:
		return errors.Join(err, a.shutdown())
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownErr := a.shutdown()
		select {
		case err := <-errCh:
			return errors.Join(err, shutdownErr)
		case <-time.After(a.shutdownTimeout):
			return errors.Join(errors.New("timed out waiting for the app to stop"), shutdownErr)
		}
	}
}

func (a *App) shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done {
		return nil
	}
	a.done = true

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		if err := a.hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
