// reads interaction events from kafka and writes them to the log
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ds124wfegd/insight-analyzer/config"
	"github.com/ds124wfegd/insight-analyzer/internal/appServer"
	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/kafka"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config. Error: {%s}", err.Error())
	}
	appServer.SetupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = kafka.Consume(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, func(event entity.InsightEvent) {
		logrus.WithFields(logrus.Fields{
			"id":     event.ID,
			"kind":   event.Kind,
			"params": event.Params,
			"rows":   event.Rows,
			"width":  event.Width,
			"height": event.Height,
			"time":   event.Time,
		}).Info("Interaction")
	})
	if err != nil {
		logrus.Fatalf("Consumer stopped: %s", err.Error())
	}
}
