package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/roasthouse/storefront/internal/catalog"
	"github.com/roasthouse/storefront/internal/orders"
	"github.com/roasthouse/storefront/pkg/models"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	h := orders.NewHandler(orders.NewMemoryStore(), catalog.Default(), logger)
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func testPayload() *models.CheckoutRequest {
	return &models.CheckoutRequest{
		CustomerName:    "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "+1 (555) 123-4567",
		CoffeeType:      "Espresso",
		Quantity:        2,
		DeliveryAddress: "12 Analytical Engine Way",
		PostalCode:      "12345",
		City:            "London",
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Espresso", Quantity: 2, Price: 1000},
		},
		TotalPrice: 2000,
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestSubmitAndList(t *testing.T) {
	srv := startTestServer(t)
	c := New(srv.URL, quietLogger())
	ctx := context.Background()

	order, err := c.Submit(ctx, testPayload())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if order.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", order.Status)
	}

	list, err := c.ListOrders(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != order.ID {
		t.Errorf("order log = %+v, want single order %s", list, order.ID)
	}

	got, err := c.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != order.ID {
		t.Errorf("got %s, want %s", got.ID, order.ID)
	}
}

func TestSubmitSurfacesValidationError(t *testing.T) {
	srv := startTestServer(t)
	c := New(srv.URL, quietLogger())

	payload := testPayload()
	payload.Email = "not-an-email"

	_, err := c.Submit(context.Background(), payload)
	if err == nil {
		t.Fatal("expected error for invalid payload")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 400 {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Message == "" {
		t.Error("server error message lost")
	}
}

func TestGetOrderNotFound(t *testing.T) {
	srv := startTestServer(t)
	c := New(srv.URL, quietLogger())

	_, err := c.GetOrder(context.Background(), "ORD-missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Errorf("expected 404 APIError, got %v", err)
	}
}
