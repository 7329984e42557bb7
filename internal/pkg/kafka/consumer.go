package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type EventHandler func(entity.InsightEvent)

// Consume reads events until ctx is cancelled. Malformed messages are logged and skipped.
func Consume(ctx context.Context, brokers []string, topic, groupID string, handle EventHandler) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})
	defer reader.Close()

	logrus.WithFields(logrus.Fields{"brokers": brokers, "topic": topic, "group_id": groupID}).Info("Event consumer started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			logrus.WithError(err).Error("Error reading message from Kafka")
			continue
		}

		event, err := DecodeEvent(msg.Value)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"partition": msg.Partition,
				"offset":    msg.Offset,
			}).WithError(err).Warn("Failed to parse event")
			continue
		}
		handle(event)
	}
}

func DecodeEvent(value []byte) (entity.InsightEvent, error) {
	var event entity.InsightEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return entity.InsightEvent{}, err
	}
	if event.Kind == "" {
		return entity.InsightEvent{}, errors.New("event has no kind")
	}
	return event, nil
}
