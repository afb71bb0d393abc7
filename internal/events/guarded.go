package events

import (
	"github.com/sirupsen/logrus"

	"github.com/roasthouse/storefront/internal/circuitbreaker"
	"github.com/roasthouse/storefront/pkg/models"
)

// Publisher matches what the order handler needs from an event sink.
type Publisher interface {
	PublishOrderCreated(order *models.Order) error
}

// GuardedPublisher wraps a publisher in a circuit breaker so a dead
// broker stops costing a timeout on every checkout.
type GuardedPublisher struct {
	inner   Publisher
	breaker *circuitbreaker.CircuitBreaker
	logger  *logrus.Logger
}

func NewGuardedPublisher(inner Publisher, breaker *circuitbreaker.CircuitBreaker, logger *logrus.Logger) *GuardedPublisher {
	return &GuardedPublisher{
		inner:   inner,
		breaker: breaker,
		logger:  logger,
	}
}

func (g *GuardedPublisher) PublishOrderCreated(order *models.Order) error {
	err := g.breaker.Execute(func() error {
		return g.inner.PublishOrderCreated(order)
	})
	if err == circuitbreaker.ErrOpen {
		g.logger.WithField("order_id", order.ID).Warn("Event publish skipped, circuit breaker open")
	}
	return err
}
