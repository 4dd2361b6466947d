package course_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/atabekdeveloper/mini-course-api/internal/course"
	"github.com/atabekdeveloper/mini-course-api/internal/logger"
	"github.com/atabekdeveloper/mini-course-api/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []course.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event course.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []course.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]course.Event(nil), p.events...)
}

var errStorageDown = errors.New("storage down")

// failingRepository fails every call with errStorageDown.
type failingRepository struct{}

func (failingRepository) List(context.Context, string) ([]course.Course, error) {
	return nil, errStorageDown
}

func (failingRepository) GetByID(context.Context, string) (*course.Course, error) {
	return nil, errStorageDown
}

func (failingRepository) Create(context.Context, string) (*course.Course, error) {
	return nil, errStorageDown
}

func (failingRepository) Update(context.Context, string, string) (bool, error) {
	return false, errStorageDown
}

func (failingRepository) Delete(context.Context, string) (bool, error) {
	return false, errStorageDown
}

func (failingRepository) DeleteAll(context.Context) error {
	return errStorageDown
}

func (failingRepository) Ping(context.Context) error {
	return errStorageDown
}

func newTestService(repo course.Repository, publisher course.EventPublisher) course.Service {
	return course.NewService(repo, publisher, logger.NewNop(), metrics.NewMock().Courses)
}

func TestService_Events(t *testing.T) {
	ctx := context.Background()

	t.Run("PublishesLifecycle", func(t *testing.T) {
		publisher := &recordingPublisher{}
		svc := newTestService(course.NewMemoryRepository(), publisher)

		created, err := svc.CreateCourse(ctx, "Event Course")
		require.NoError(t, err)
		require.NoError(t, svc.UpdateCourse(ctx, created.ID.String(), "Renamed"))
		require.NoError(t, svc.DeleteCourse(ctx, created.ID.String()))

		events := publisher.Events()
		require.Len(t, events, 3)

		assert.Equal(t, course.EventCreated, events[0].Type)
		assert.Equal(t, "Event Course", events[0].Title)
		assert.Equal(t, course.EventUpdated, events[1].Type)
		assert.Equal(t, "Renamed", events[1].Title)
		assert.Equal(t, course.EventDeleted, events[2].Type)
		assert.Empty(t, events[2].Title)

		for _, e := range events {
			assert.Equal(t, created.ID, e.CourseID)
			assert.False(t, e.OccurredAt.IsZero())
		}
	})

	t.Run("NoEventsForMissingCourse", func(t *testing.T) {
		publisher := &recordingPublisher{}
		svc := newTestService(course.NewMemoryRepository(), publisher)

		assert.ErrorIs(t, svc.UpdateCourse(ctx, "999999", "Some title"), course.ErrCourseNotFound)
		assert.ErrorIs(t, svc.DeleteCourse(ctx, "999999"), course.ErrCourseNotFound)
		assert.Empty(t, publisher.Events())
	})

	t.Run("PublishFailureDoesNotFailMutation", func(t *testing.T) {
		publisher := &recordingPublisher{err: errors.New("broker unavailable")}
		repo := course.NewMemoryRepository()
		svc := newTestService(repo, publisher)

		created, err := svc.CreateCourse(ctx, "Still Saved")
		require.NoError(t, err)
		assert.Len(t, publisher.Events(), 1)

		found, err := repo.GetByID(ctx, created.ID.String())
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("NilPublisherDisablesEvents", func(t *testing.T) {
		svc := newTestService(course.NewMemoryRepository(), nil)

		created, err := svc.CreateCourse(ctx, "Quiet Course")
		require.NoError(t, err)
		assert.NoError(t, svc.DeleteCourse(ctx, created.ID.String()))
	})
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(failingRepository{}, nil)

	_, err := svc.ListCourses(ctx, "")
	assert.ErrorIs(t, err, errStorageDown)

	_, err = svc.GetCourse(ctx, "1")
	assert.ErrorIs(t, err, errStorageDown)

	_, err = svc.CreateCourse(ctx, "Broken")
	assert.ErrorIs(t, err, errStorageDown)

	assert.ErrorIs(t, svc.UpdateCourse(ctx, "1", "Broken"), errStorageDown)
	assert.ErrorIs(t, svc.DeleteCourse(ctx, "1"), errStorageDown)
	assert.ErrorIs(t, svc.DeleteAllCourses(ctx), errStorageDown)
}

func TestService_GetCourse_NotFound(t *testing.T) {
	svc := newTestService(course.NewMemoryRepository(), nil)

	c, err := svc.GetCourse(context.Background(), "not-an-id")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, course.ErrCourseNotFound)
}
