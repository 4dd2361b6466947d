package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type CourseMetrics struct {
	created     metric.Int64Counter
	updated     metric.Int64Counter
	deleted     metric.Int64Counter
	viewed      metric.Int64Counter
	listViewed  metric.Int64Counter
	invalidBody metric.Int64Counter
}

func NewCourseMetrics(meter metric.Meter) (*CourseMetrics, error) {
	m := &CourseMetrics{}

	var err error

	m.created, err = meter.Int64Counter(
		"course_service.courses.created",
		metric.WithDescription("Total number of courses created"),
		metric.WithUnit("{course}"),
	)
	if err != nil {
		return nil, err
	}

	m.updated, err = meter.Int64Counter(
		"course_service.courses.updated",
		metric.WithDescription("Total number of courses updated"),
		metric.WithUnit("{course}"),
	)
	if err != nil {
		return nil, err
	}

	m.deleted, err = meter.Int64Counter(
		"course_service.courses.deleted",
		metric.WithDescription("Total number of courses deleted"),
		metric.WithUnit("{course}"),
	)
	if err != nil {
		return nil, err
	}

	m.viewed, err = meter.Int64Counter(
		"course_service.courses.viewed",
		metric.WithDescription("Total number of single course views"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.listViewed, err = meter.Int64Counter(
		"course_service.courses.list_viewed",
		metric.WithDescription("Total number of times the course list was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.invalidBody, err = meter.Int64Counter(
		"course_service.requests.validation_failed",
		metric.WithDescription("Total number of write requests rejected by validation"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *CourseMetrics) RecordCreated(ctx context.Context) {
	if m != nil && m.created != nil {
		m.created.Add(ctx, 1)
	}
}

func (m *CourseMetrics) RecordUpdated(ctx context.Context) {
	if m != nil && m.updated != nil {
		m.updated.Add(ctx, 1)
	}
}

func (m *CourseMetrics) RecordDeleted(ctx context.Context) {
	if m != nil && m.deleted != nil {
		m.deleted.Add(ctx, 1)
	}
}

func (m *CourseMetrics) RecordViewed(ctx context.Context) {
	if m != nil && m.viewed != nil {
		m.viewed.Add(ctx, 1)
	}
}

func (m *CourseMetrics) RecordListViewed(ctx context.Context) {
	if m != nil && m.listViewed != nil {
		m.listViewed.Add(ctx, 1)
	}
}

func (m *CourseMetrics) RecordValidationFailed(ctx context.Context) {
	if m != nil && m.invalidBody != nil {
		m.invalidBody.Add(ctx, 1)
	}
}
