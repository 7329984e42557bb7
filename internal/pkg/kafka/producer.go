package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	Publish(ctx context.Context, event entity.InsightEvent) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer connects to the first broker and makes sure the topic exists.
// When the broker cannot be reached a logging producer is returned instead.
func NewProducer(brokers []string, topic string) Producer {
	if len(brokers) == 0 || brokers[0] == "" {
		logrus.Warn("No Kafka brokers configured, events will only be logged")
		return &logProducer{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		logrus.WithError(err).Warn("Kafka connection failed, events will only be logged")
		return &logProducer{}
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.WithError(err).Info("Could not create topic (might already exist)")
	}

	logrus.WithFields(logrus.Fields{"brokers": brokers, "topic": topic}).Info("Connected to Kafka")
	return &kafkaProducer{writer: writer, topic: topic}
}

func NewLogProducer() Producer {
	return &logProducer{}
}

func (p *kafkaProducer) Publish(ctx context.Context, event entity.InsightEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Kind),
		Value: value,
		Time:  event.Time,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"topic": p.topic, "kind": event.Kind, "id": event.ID}).Debug("Event published")
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// logProducer stands in for Kafka when no broker is available
type logProducer struct{}

func (m *logProducer) Publish(_ context.Context, event entity.InsightEvent) error {
	logrus.WithFields(logrus.Fields{
		"kind":   event.Kind,
		"id":     event.ID,
		"params": event.Params,
	}).Info("Event")
	return nil
}

func (m *logProducer) Close() error {
	return nil
}
