package messaging_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/atabekdeveloper/mini-course-api/internal/course"
	"github.com/atabekdeveloper/mini-course-api/internal/logger"
	"github.com/atabekdeveloper/mini-course-api/internal/messaging"
	"github.com/atabekdeveloper/mini-course-api/internal/metrics"
	"github.com/atabekdeveloper/mini-course-api/testing/testnats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_Publish(t *testing.T) {
	natsContainer := testnats.SetupNATS(t)
	defer natsContainer.Cleanup(t)

	conn := natsContainer.Connect(t)
	sub, err := conn.SubscribeSync("courses.events")
	require.NoError(t, err)
	require.NoError(t, conn.Flush())

	producer, err := messaging.NewProducer(natsContainer.URL, "courses.events", logger.NewNop(), metrics.NewMock().Messaging)
	require.NoError(t, err)
	defer producer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, producer.Ping(ctx))
	})

	t.Run("DeliversEvent", func(t *testing.T) {
		event := course.Event{
			Type:       course.EventUpdated,
			CourseID:   course.DocumentID("507f1f77bcf86cd799439011"),
			Title:      "NATS Course",
			OccurredAt: time.Now().UTC(),
		}
		require.NoError(t, producer.Publish(ctx, event))

		msg, err := sub.NextMsg(5 * time.Second)
		require.NoError(t, err)
		assert.Equal(t, "course.updated", msg.Header.Get("Event-Type"))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Data, &decoded))
		assert.Equal(t, "course.updated", decoded["type"])
		assert.Equal(t, "507f1f77bcf86cd799439011", decoded["courseId"])
		assert.Equal(t, "NATS Course", decoded["title"])
	})
}
