package health

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/atabekdeveloper/mini-course-api/internal/metrics"
)

type CheckFunc func(ctx context.Context) error

// Checker runs named dependency checks on demand and on a fixed interval.
type Checker struct {
	mu       sync.Mutex
	checks   map[string]CheckFunc
	metrics  *metrics.HealthMetrics
	logger   *slog.Logger
	onChange func(healthy bool)
	healthy  *bool
}

func NewChecker(m *metrics.HealthMetrics, logger *slog.Logger) *Checker {
	return &Checker{
		checks:  make(map[string]CheckFunc),
		metrics: m,
		logger:  logger,
	}
}

func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Names returns the registered dependency names in sorted order.
func (c *Checker) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnChange sets a callback invoked by Run whenever overall health flips.
func (c *Checker) OnChange(fn func(healthy bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

func (c *Checker) CheckAll(ctx context.Context) map[string]error {
	c.mu.Lock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.Unlock()

	results := make(map[string]error, len(checks))
	for name, check := range checks {
		start := time.Now()
		err := check(ctx)
		c.metrics.RecordDependencyCheck(ctx, name, time.Since(start), err)
		results[name] = err
	}
	return results
}

// Run checks dependencies every interval until ctx is cancelled.
func (c *Checker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.tick(ctx, interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick(ctx, interval)
		}
	}
}

func (c *Checker) tick(ctx context.Context, timeout time.Duration) {
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	healthy := true
	for name, err := range c.CheckAll(checkCtx) {
		if err != nil {
			healthy = false
			c.logger.WarnContext(ctx, "dependency check failed", "dependency", name, "error", err)
		}
	}

	c.mu.Lock()
	changed := c.healthy == nil || *c.healthy != healthy
	c.healthy = &healthy
	onChange := c.onChange
	c.mu.Unlock()

	if changed && onChange != nil {
		onChange(healthy)
	}
}
