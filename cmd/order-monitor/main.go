package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/roasthouse/storefront/internal/events"
	"github.com/roasthouse/storefront/pkg/models"
)

// order-monitor tails the order.created topic and keeps a running
// tally, giving operators a cheap live view of checkout volume.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	kafkaBrokers := getEnv("KAFKA_BROKERS", "localhost:9092")
	groupID := getEnv("MONITOR_GROUP_ID", "order-monitor-group")

	tally := &orderTally{logger: logger}

	consumer, err := events.NewKafkaConsumer(kafkaBrokers, groupID, tally, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create order event consumer")
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.WithError(err).Error("Order event consumer stopped with error")
		}
	}()

	logger.WithField("brokers", kafkaBrokers).Info("Order monitor started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down order monitor...")
}

type orderTally struct {
	logger     *logrus.Logger
	orderCount int
	totalCents int64
}

func (t *orderTally) HandleOrderCreated(event events.OrderCreatedEvent) error {
	t.orderCount++
	t.totalCents += event.TotalPriceCents

	t.logger.WithFields(logrus.Fields{
		"order_id":      event.OrderID,
		"customer_id":   event.CustomerID,
		"order_total":   models.Money(event.TotalPriceCents).Display(),
		"orders_seen":   t.orderCount,
		"revenue_total": models.Money(t.totalCents).Display(),
	}).Info("Order observed")

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
