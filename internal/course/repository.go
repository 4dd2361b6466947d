package course

import "context"

// Repository is the only path to course storage. Ids are passed as raw path
// values; a value the backend cannot parse behaves exactly like a missing
// course. Errors are reserved for storage failures.
type Repository interface {
	List(ctx context.Context, titleFilter string) ([]Course, error)
	// GetByID returns nil, nil when the course does not exist.
	GetByID(ctx context.Context, id string) (*Course, error)
	Create(ctx context.Context, title string) (*Course, error)
	// Update reports false when no course matched id.
	Update(ctx context.Context, id, title string) (bool, error)
	// Delete reports false when no course matched id.
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
	Ping(ctx context.Context) error
}
