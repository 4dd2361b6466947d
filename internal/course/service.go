package course

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/atabekdeveloper/mini-course-api/internal/metrics"
)

var ErrCourseNotFound = errors.New("course not found")

type EventType string

const (
	EventCreated EventType = "course.created"
	EventUpdated EventType = "course.updated"
	EventDeleted EventType = "course.deleted"
)

// Event notifies other services about a course mutation. Title is empty for
// deletions.
type Event struct {
	Type       EventType `json:"type"`
	CourseID   ID        `json:"courseId"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type Service interface {
	ListCourses(ctx context.Context, titleFilter string) ([]Course, error)
	GetCourse(ctx context.Context, id string) (*Course, error)
	CreateCourse(ctx context.Context, title string) (*Course, error)
	UpdateCourse(ctx context.Context, id, title string) error
	DeleteCourse(ctx context.Context, id string) error
	DeleteAllCourses(ctx context.Context) error
}

type service struct {
	repo      Repository
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *metrics.CourseMetrics
	now       func() time.Time
}

// NewService builds the course service. A nil publisher disables events.
func NewService(repo Repository, publisher EventPublisher, logger *slog.Logger, m *metrics.CourseMetrics) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *service) ListCourses(ctx context.Context, titleFilter string) ([]Course, error) {
	courses, err := s.repo.List(ctx, titleFilter)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordListViewed(ctx)
	return courses, nil
}

func (s *service) GetCourse(ctx context.Context, id string) (*Course, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	s.metrics.RecordViewed(ctx)
	return c, nil
}

func (s *service) CreateCourse(ctx context.Context, title string) (*Course, error) {
	c, err := s.repo.Create(ctx, title)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordCreated(ctx)
	s.publish(ctx, EventCreated, c.ID, c.Title)
	return c, nil
}

func (s *service) UpdateCourse(ctx context.Context, id, title string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCourseNotFound
	}

	updated, err := s.repo.Update(ctx, id, title)
	if err != nil {
		return err
	}
	if !updated {
		return ErrCourseNotFound
	}
	s.metrics.RecordUpdated(ctx)
	s.publish(ctx, EventUpdated, c.ID, title)
	return nil
}

func (s *service) DeleteCourse(ctx context.Context, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCourseNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCourseNotFound
	}
	s.metrics.RecordDeleted(ctx)
	s.publish(ctx, EventDeleted, c.ID, "")
	return nil
}

func (s *service) DeleteAllCourses(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

// publish never fails the caller; the mutation is already stored.
func (s *service) publish(ctx context.Context, eventType EventType, id ID, title string) {
	if s.publisher == nil {
		return
	}

	event := Event{
		Type:       eventType,
		CourseID:   id,
		Title:      title,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish course event",
			"type", string(eventType),
			"course_id", id.String(),
			"error", err,
		)
	}
}
