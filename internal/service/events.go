package service

import (
	"context"
	"time"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/kafka"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventPublisher reports finished interactions. Failures are logged only,
// an unreachable broker never fails a user request.
type EventPublisher struct {
	producer kafka.Producer
	timeout  time.Duration
}

func NewEventPublisher(producer kafka.Producer, timeout time.Duration) *EventPublisher {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &EventPublisher{producer: producer, timeout: timeout}
}

func (p *EventPublisher) publish(ctx context.Context, event entity.InsightEvent) {
	if p == nil || p.producer == nil {
		return
	}
	event.ID = uuid.New().String()
	event.Time = time.Now().UTC()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.producer.Publish(ctx, event); err != nil {
		logrus.WithFields(logrus.Fields{
			"kind":  event.Kind,
			"error": err,
		}).Warn("Failed to publish event")
	}
}
