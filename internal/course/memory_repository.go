package course

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	id            int64
	title         string
	studentsCount int
}

// MemoryRepository keeps courses in process. Ids are creation timestamps in
// milliseconds, bumped when needed so they stay strictly increasing.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[int64]*memoryRecord
	order   []int64
	lastID  int64
	now     func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[int64]*memoryRecord),
		now:     time.Now,
	}
}

func (r *MemoryRepository) List(ctx context.Context, titleFilter string) ([]Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := make([]Course, 0, len(r.order))
	for _, id := range r.order {
		rec := r.records[id]
		if MatchesTitle(rec.title, titleFilter) {
			courses = append(courses, rec.course())
		}
	}
	return courses, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Course, error) {
	n, ok := ParseNumericID(id)
	if !ok {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[n]
	if !ok {
		return nil, nil
	}
	c := rec.course()
	return &c, nil
}

func (r *MemoryRepository) Create(ctx context.Context, title string) (*Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id

	rec := &memoryRecord{id: id, title: title, studentsCount: 0}
	r.records[id] = rec
	r.order = append(r.order, id)

	c := rec.course()
	return &c, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id, title string) (bool, error) {
	n, ok := ParseNumericID(id)
	if !ok {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[n]
	if !ok {
		return false, nil
	}
	rec.title = title
	return true, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	n, ok := ParseNumericID(id)
	if !ok {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[n]; !ok {
		return false, nil
	}
	delete(r.records, n)
	for i, existing := range r.order {
		if existing == n {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *MemoryRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[int64]*memoryRecord)
	r.order = nil
	return nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (rec *memoryRecord) course() Course {
	return Course{ID: NumericID(rec.id), Title: rec.title}
}
