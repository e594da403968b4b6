// Package runner executes a task against many devices with bounded
// concurrency, retries, progress display, and result persistence.
package runner

import (
	"context"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/netwalker-io/netwalker/pkg/config"
	"github.com/netwalker-io/netwalker/pkg/connect"
	"github.com/netwalker-io/netwalker/pkg/util"
)

// Task is one unit of per-device work. It receives the device's resolved
// connection parameters and returns the textual output to record.
type Task func(ctx context.Context, device string, params map[string]interface{}) (string, error)

// Result records one device's outcome.
type Result struct {
	Device   string        `json:"device"`
	Output   string        `json:"output,omitempty"`
	Error    string        `json:"error,omitempty"`
	Attempts int           `json:"attempts"`
	Duration time.Duration `json:"duration"`

	Err error `json:"-"`
}

// Runner fans a Task out across devices. Concurrency and retry policy come
// from the inventory's general section.
type Runner struct {
	cfg     *config.NetworkConfig
	builder *connect.Builder

	// Progress enables a terminal progress bar during Run.
	Progress bool
}

// New creates a runner over a loaded inventory and its parameter builder.
func New(cfg *config.NetworkConfig, builder *connect.Builder) *Runner {
	return &Runner{cfg: cfg, builder: builder}
}

// Preflight runs the group-credential ambiguity guard for every target
// device. Bulk runs refuse to start on an ambiguous inventory rather than
// failing on some devices mid-flight.
func (r *Runner) Preflight(devices []string) error {
	for _, device := range devices {
		if err := r.builder.Resolver().CheckDevice(device); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the task on every device with bounded concurrency and the
// configured retry policy. Per-device failures are recorded in the results,
// not returned; the error return covers preflight and context cancellation.
func (r *Runner) Run(ctx context.Context, devices []string, usernameOverride, passwordOverride string, task Task) ([]Result, error) {
	if err := r.Preflight(devices); err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if r.Progress {
		bar = progressbar.Default(int64(len(devices)), "devices")
		defer bar.Finish()
	}

	results := make([]Result, len(devices))

	// The derived context only propagates caller cancellation into the
	// workers; errgroup cancels it once Wait returns, so the caller's
	// context is the one consulted for the error return.
	parent := ctx
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency())

	for i, device := range devices {
		g.Go(func() error {
			results[i] = r.runOne(ctx, device, usernameOverride, passwordOverride, task)
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, parent.Err()
}

func (r *Runner) runOne(ctx context.Context, device, usernameOverride, passwordOverride string, task Task) Result {
	res := Result{Device: device}
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		if res.Err != nil {
			res.Error = res.Err.Error()
		}
	}()

	params, err := r.builder.BuildParams(device, usernameOverride, passwordOverride)
	if err != nil {
		res.Err = err
		return res
	}

	attempts := r.cfg.General.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := time.Duration(r.cfg.General.RetryDelay) * time.Second

	log := util.WithDevice(device)
	for attempt := 1; attempt <= attempts; attempt++ {
		res.Attempts = attempt
		res.Output, res.Err = task(ctx, device, params)
		if res.Err == nil {
			return res
		}
		log.Warnf("attempt %d/%d failed: %v", attempt, attempts, res.Err)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			res.Err = ctx.Err()
			return res
		case <-time.After(delay):
		}
	}
	return res
}

func (r *Runner) concurrency() int {
	if c := r.cfg.General.Concurrency; c > 0 {
		return c
	}
	return 5
}
