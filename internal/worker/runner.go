package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Runner launches detached units of work that outlive the request which
// triggered them. Each unit runs behind its own panic boundary so a failure
// inside it cannot reach the request-handling path.
type Runner struct {
	logger *slog.Logger

	mu     sync.Mutex
	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner constructs Runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Start binds the runner to the application lifetime context.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base, r.cancel = context.WithCancel(ctx)
}

// Launch runs fn on its own goroutine under the runner's base context.
// The calling request never waits for fn.
func (r *Runner) Launch(name string, fn func(ctx context.Context)) {
	r.mu.Lock()
	ctx := r.base
	r.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("detached unit panicked",
					slog.String("unit", name),
					slog.Any("panic", rec),
				)
			}
		}()
		fn(ctx)
	}()
}

// Stop cancels the base context and waits for in-flight units to finish.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}
