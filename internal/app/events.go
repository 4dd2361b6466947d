package app

import (
	"log/slog"

	"github.com/atabekdeveloper/mini-course-api/internal/config"
	"github.com/atabekdeveloper/mini-course-api/internal/course"
	"github.com/atabekdeveloper/mini-course-api/internal/health"
	"github.com/atabekdeveloper/mini-course-api/internal/kafka"
	"github.com/atabekdeveloper/mini-course-api/internal/messaging"
	"github.com/atabekdeveloper/mini-course-api/internal/metrics"
)

type eventPublisher interface {
	course.EventPublisher
	Close() error
}

// newEventPublisher returns nil when events are disabled or the broker is
// unreachable; the service then runs without publishing.
func newEventPublisher(cfg config.EventsConfig, checker *health.Checker, m *metrics.MessagingMetrics, logger *slog.Logger) eventPublisher {
	switch cfg.Driver {
	case config.EventsNATS:
		producer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, logger, m)
		if err != nil {
			logger.Warn("failed to initialize NATS producer", "error", err)
			return nil
		}
		checker.Register("nats", producer.Ping)
		return producer

	case config.EventsKafka:
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger, m)
		if err != nil {
			logger.Warn("failed to initialize kafka producer", "error", err)
			return nil
		}
		return producer

	default:
		logger.Info("course events disabled")
		return nil
	}
}
