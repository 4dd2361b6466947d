package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/atabekdeveloper/mini-course-api/internal/course"
	"github.com/atabekdeveloper/mini-course-api/internal/kafka"
	"github.com/atabekdeveloper/mini-course-api/internal/logger"
	"github.com/atabekdeveloper/mini-course-api/internal/metrics"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_Publish(t *testing.T) {
	event := course.Event{
		Type:       course.EventCreated,
		CourseID:   course.NumericID(1718000000000),
		Title:      "Kafka Course",
		OccurredAt: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
	}

	t.Run("Success", func(t *testing.T) {
		mockProducer := mocks.NewSyncProducer(t, kafka.NewConfig())
		mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			assert.Equal(t, "courses.events", msg.Topic)

			key, err := msg.Key.Encode()
			require.NoError(t, err)
			assert.Equal(t, "1718000000000", string(key))

			value, err := msg.Value.Encode()
			require.NoError(t, err)

			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(value, &decoded))
			assert.Equal(t, "course.created", decoded["type"])
			assert.Equal(t, float64(1718000000000), decoded["courseId"])
			assert.Equal(t, "Kafka Course", decoded["title"])
			return nil
		})

		producer := kafka.NewProducerWithClient(mockProducer, "courses.events", logger.NewNop(), metrics.NewMock().Messaging)
		defer producer.Close()

		assert.NoError(t, producer.Publish(context.Background(), event))
	})

	t.Run("BrokerFailure", func(t *testing.T) {
		mockProducer := mocks.NewSyncProducer(t, kafka.NewConfig())
		mockProducer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

		producer := kafka.NewProducerWithClient(mockProducer, "courses.events", logger.NewNop(), metrics.NewMock().Messaging)
		defer producer.Close()

		err := producer.Publish(context.Background(), event)
		assert.True(t, errors.Is(err, sarama.ErrNotLeaderForPartition))
	})
}
