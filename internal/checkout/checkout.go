package checkout

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/roasthouse/storefront/internal/cart"
	"github.com/roasthouse/storefront/pkg/models"
)

// ErrSubmissionInFlight is returned when a submission starts while a
// previous one has not finished. It is a latch, not a queue: the second
// attempt is rejected instead of waiting, which is what keeps a double
// click from creating two orders.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// ErrEmptyCart is returned when checkout starts with nothing to buy.
var ErrEmptyCart = errors.New("cart is empty")

// Submitter posts a checkout payload and returns the created order.
// pkg/client satisfies this against a live storefront.
type Submitter interface {
	Submit(ctx context.Context, payload *models.CheckoutRequest) (*models.Order, error)
}

// CustomerDetails are the form fields the customer fills in at checkout.
type CustomerDetails struct {
	Name            string
	Email           string
	Phone           string
	DeliveryAddress string
	PostalCode      string
	City            string
	Notes           string
}

// Coordinator drives a session's checkout: snapshot the cart, submit,
// and clear the cart only after the storefront confirms. Any failure
// leaves the cart untouched so the customer can retry.
type Coordinator struct {
	ledger    *cart.Ledger
	submitter Submitter
	logger    *logrus.Logger
	inFlight  atomic.Bool
}

func NewCoordinator(ledger *cart.Ledger, submitter Submitter, logger *logrus.Logger) *Coordinator {
	return &Coordinator{
		ledger:    ledger,
		submitter: submitter,
		logger:    logger,
	}
}

// InFlight reports whether a submission is currently outstanding, so
// the UI can disable its submit control.
func (c *Coordinator) InFlight() bool {
	return c.inFlight.Load()
}

// Submit snapshots the ledger into a checkout payload and sends it.
func (c *Coordinator) Submit(ctx context.Context, details CustomerDetails) (*models.Order, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	items := c.ledger.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	payload := buildPayload(items, c.ledger.Total(), details)

	order, err := c.submitter.Submit(ctx, payload)
	if err != nil {
		c.logger.WithError(err).Warn("Order submission failed, cart preserved")
		return nil, err
	}

	c.ledger.Clear()
	c.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.TotalPrice.Display(),
	}).Info("Checkout complete")

	return order, nil
}

func buildPayload(items []models.LineItem, total models.Money, details CustomerDetails) *models.CheckoutRequest {
	orderItems := make([]models.OrderItem, 0, len(items))
	quantity := 0
	summary := ""
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
		})
		quantity += item.Quantity
		if summary != "" {
			summary += ", "
		}
		summary += item.Product.Name
	}

	return &models.CheckoutRequest{
		CustomerName:    details.Name,
		Email:           details.Email,
		Phone:           details.Phone,
		CoffeeType:      summary,
		Quantity:        quantity,
		DeliveryAddress: details.DeliveryAddress,
		PostalCode:      details.PostalCode,
		City:            details.City,
		Notes:           details.Notes,
		Items:           orderItems,
		TotalPrice:      total,
	}
}
