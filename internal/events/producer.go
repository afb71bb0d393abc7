package events

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"github.com/roasthouse/storefront/pkg/models"
)

const (
	OrderCreatedTopic = "storefront.order.created"
)

// OrderCreatedEvent is the wire form of an order announcement. Amounts
// travel as cents so consumers never parse display strings.
type OrderCreatedEvent struct {
	OrderID         string    `json:"order_id"`
	CustomerID      string    `json:"customer_id"`
	TotalPriceCents int64     `json:"total_price_cents"`
	ItemCount       int       `json:"item_count"`
	CreatedAt       time.Time `json:"created_at"`
	EventTime       time.Time `json:"event_time"`
}

type KafkaProducer struct {
	producer sarama.SyncProducer
	logger   *logrus.Logger
}

func NewKafkaProducer(brokers string, logger *logrus.Logger) (*KafkaProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), config)
	if err != nil {
		return nil, err
	}

	return &KafkaProducer{
		producer: producer,
		logger:   logger,
	}, nil
}

// PublishOrderCreated announces a freshly appended order. The caller
// treats failures as best effort; the order is already durable.
func (p *KafkaProducer) PublishOrderCreated(order *models.Order) error {
	event := OrderCreatedEvent{
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		TotalPriceCents: int64(order.TotalPrice),
		ItemCount:       len(order.Items),
		CreatedAt:       order.CreatedAt,
		EventTime:       time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: OrderCreatedTopic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).Error("Failed to send order created event")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"topic":     OrderCreatedTopic,
		"partition": partition,
		"offset":    offset,
		"order_id":  event.OrderID,
	}).Info("Order created event published")

	return nil
}

func (p *KafkaProducer) Close() error {
	return p.producer.Close()
}
