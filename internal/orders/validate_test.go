package orders

import (
	"testing"

	"github.com/roasthouse/storefront/pkg/models"
)

func validCheckout() models.CheckoutRequest {
	return models.CheckoutRequest{
		CustomerName:    "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "+1 (555) 123-4567",
		CoffeeType:      "House Espresso Blend",
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

func TestValidCheckoutPasses(t *testing.T) {
	v := NewValidator()
	req := validCheckout()
	if err := v.ValidateCheckout(&req); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestFieldRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.CheckoutRequest)
		wantField string
	}{
		{"name too short", func(r *models.CheckoutRequest) { r.CustomerName = "A" }, "customerName"},
		{"name too long", func(r *models.CheckoutRequest) {
			long := make([]byte, 51)
			for i := range long {
				long[i] = 'x'
			}
			r.CustomerName = string(long)
		}, "customerName"},
		{"bad email", func(r *models.CheckoutRequest) { r.Email = "not-an-email" }, "email"},
		{"missing email", func(r *models.CheckoutRequest) { r.Email = "" }, "email"},
		{"phone too short", func(r *models.CheckoutRequest) { r.Phone = "555-1234" }, "phone"},
		{"phone with letters", func(r *models.CheckoutRequest) { r.Phone = "call me maybe!" }, "phone"},
		{"empty coffee type", func(r *models.CheckoutRequest) { r.CoffeeType = "" }, "coffeeType"},
		{"quantity zero", func(r *models.CheckoutRequest) { r.Quantity = 0 }, "quantity"},
		{"quantity over cap", func(r *models.CheckoutRequest) { r.Quantity = 101 }, "quantity"},
		{"short address", func(r *models.CheckoutRequest) { r.DeliveryAddress = "1 St" }, "deliveryAddress"},
		{"postal 4 digits", func(r *models.CheckoutRequest) { r.PostalCode = "1234" }, "postalCode"},
		{"postal 7 digits", func(r *models.CheckoutRequest) { r.PostalCode = "1234567" }, "postalCode"},
		{"postal with letters", func(r *models.CheckoutRequest) { r.PostalCode = "12a45" }, "postalCode"},
		{"city too short", func(r *models.CheckoutRequest) { r.City = "X" }, "city"},
		{"no items", func(r *models.CheckoutRequest) { r.Items = nil }, "items"},
		{"empty items", func(r *models.CheckoutRequest) { r.Items = []models.OrderItem{} }, "items"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCheckout()
			tt.mutate(&req)

			err := v.ValidateCheckout(&req)
			if err == nil {
				t.Fatal("expected validation failure")
			}
			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, fe := range ve.Fields {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected field %q in %v", tt.wantField, ve.Fields)
			}
		})
	}
}

func TestPostalCodeBoundaries(t *testing.T) {
	v := NewValidator()

	for _, code := range []string{"12345", "123456"} {
		req := validCheckout()
		req.PostalCode = code
		if err := v.ValidateCheckout(&req); err != nil {
			t.Errorf("postal code %q should pass, got %v", code, err)
		}
	}
}

func TestNotesAreOptional(t *testing.T) {
	v := NewValidator()

	req := validCheckout()
	req.Notes = ""
	if err := v.ValidateCheckout(&req); err != nil {
		t.Errorf("empty notes should pass, got %v", err)
	}

	req.Notes = "leave at the door"
	if err := v.ValidateCheckout(&req); err != nil {
		t.Errorf("filled notes should pass, got %v", err)
	}
}

func TestAllFailuresAccumulate(t *testing.T) {
	v := NewValidator()
	req := validCheckout()
	req.Email = "nope"
	req.PostalCode = "12"
	req.City = ""

	err := v.ValidateCheckout(&req)
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) < 3 {
		t.Errorf("expected at least 3 field errors, got %v", ve.Fields)
	}
}

func TestItemRulesApplyThroughDive(t *testing.T) {
	v := NewValidator()
	req := validCheckout()
	req.Items = []models.OrderItem{{ProductID: "p1", ProductName: "Espresso", Quantity: 0, Price: 1000}}

	err := v.ValidateCheckout(&req)
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	found := false
	for _, fe := range ve.Fields {
		if fe.Field == "items[0].quantity" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected items[0].quantity in %v", ve.Fields)
	}
}
