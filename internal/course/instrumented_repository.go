package course

import (
	"context"
	"time"

	"github.com/atabekdeveloper/mini-course-api/internal/metrics"
)

// instrumentedRepository records the duration and outcome of every storage
// call under the backend name.
type instrumentedRepository struct {
	next    Repository
	backend string
	metrics *metrics.DatabaseMetrics
}

func NewInstrumentedRepository(next Repository, backend string, m *metrics.DatabaseMetrics) Repository {
	return &instrumentedRepository{next: next, backend: backend, metrics: m}
}

func (r *instrumentedRepository) observe(ctx context.Context, operation string, start time.Time, err error) {
	r.metrics.RecordQuery(ctx, r.backend, operation, time.Since(start), err)
}

func (r *instrumentedRepository) List(ctx context.Context, titleFilter string) ([]Course, error) {
	start := time.Now()
	courses, err := r.next.List(ctx, titleFilter)
	r.observe(ctx, "list", start, err)
	return courses, err
}

func (r *instrumentedRepository) GetByID(ctx context.Context, id string) (*Course, error) {
	start := time.Now()
	c, err := r.next.GetByID(ctx, id)
	r.observe(ctx, "get", start, err)
	return c, err
}

func (r *instrumentedRepository) Create(ctx context.Context, title string) (*Course, error) {
	start := time.Now()
	c, err := r.next.Create(ctx, title)
	r.observe(ctx, "create", start, err)
	return c, err
}

func (r *instrumentedRepository) Update(ctx context.Context, id, title string) (bool, error) {
	start := time.Now()
	ok, err := r.next.Update(ctx, id, title)
	r.observe(ctx, "update", start, err)
	return ok, err
}

func (r *instrumentedRepository) Delete(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	ok, err := r.next.Delete(ctx, id)
	r.observe(ctx, "delete", start, err)
	return ok, err
}

func (r *instrumentedRepository) DeleteAll(ctx context.Context) error {
	start := time.Now()
	err := r.next.DeleteAll(ctx)
	r.observe(ctx, "delete_all", start, err)
	return err
}

func (r *instrumentedRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}
