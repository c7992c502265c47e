// Package shutdown runs prioritised cleanup hooks when the server stops.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/anotherclibrary/acsite/pkg/logging"
)

// Common shutdown errors.
var (
	ErrShutdownTimeout = errors.New("shutdown timed out")
	ErrAlreadyClosed   = errors.New("shutdown handler already closed")
)

// Hook priorities. Lower runs earlier.
const (
	// PriorityLive closes live connections before the listener stops.
	PriorityLive = 100
	// PriorityHTTP drains the HTTP server.
	PriorityHTTP = 200
	// PriorityLast runs after everything else.
	PriorityLast = 1000
)

// Hook represents a shutdown hook.
type Hook struct {
	Name     string
	Priority int
	Fn       func(ctx context.Context) error
}

// Handler manages graceful shutdown.
type Handler struct {
	timeout time.Duration
	logger  logging.Logger
	hooks   []Hook
	done    chan struct{}
	closed  bool
	mu      sync.Mutex
}

// NewHandler creates a handler whose hooks share one timeout budget.
func NewHandler(timeout time.Duration, logger logging.Logger) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Handler{
		timeout: timeout,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Register adds a shutdown hook.
func (h *Handler) Register(name string, priority int, fn func(ctx context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, Hook{Name: name, Priority: priority, Fn: fn})
}

// Wait blocks until ctx is cancelled, then shuts down.
func (h *Handler) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
	case <-h.done:
		return nil
	}
	return h.Shutdown()
}

// Shutdown runs every hook in priority order. Hooks with equal priority keep
// registration order. All hooks run even if one fails; errors are joined.
func (h *Handler) Shutdown() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrAlreadyClosed
	}
	h.closed = true
	close(h.done)

	hooks := make([]Hook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	sort.SliceStable(hooks, func(i, j int) bool {
		return hooks[i].Priority < hooks[j].Priority
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	var errs []error
	for _, hook := range hooks {
		start := time.Now()
		err := hook.Fn(ctx)

		fields := []logging.Field{
			logging.String("hook", hook.Name),
			logging.Duration("duration", time.Since(start)),
		}
		if err != nil {
			h.logger.Warn("shutdown hook failed", append(fields, logging.Err(err))...)
			errs = append(errs, fmt.Errorf("%s: %w", hook.Name, err))
		} else {
			h.logger.Debug("shutdown hook completed", fields...)
		}

		if ctx.Err() != nil {
			return errors.Join(append(errs, ErrShutdownTimeout)...)
		}
	}

	return errors.Join(errs...)
}

// Done returns a channel that's closed once shutdown has started.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
