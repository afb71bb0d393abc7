package models

import (
	"encoding/json"
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input   string
		want    Money
		wantErr bool
	}{
		{"$10.00", 1000, false},
		{"10.00", 1000, false},
		{"$4.50", 450, false},
		{" $12.99 ", 1299, false},
		{"0", 0, false},
		{"", 0, true},
		{"$", 0, true},
		{"ten dollars", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePrice(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePrice(%q): expected error, got %d", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePrice(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrice(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestMoneyDisplay(t *testing.T) {
	if got := Money(1000).Display(); got != "$10.00" {
		t.Errorf("Display() = %q, want $10.00", got)
	}
	if got := Money(5).Display(); got != "$0.05" {
		t.Errorf("Display() = %q, want $0.05", got)
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Money(2000))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "20.00" {
		t.Errorf("Marshal = %s, want 20.00", data)
	}

	var m Money
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m != 2000 {
		t.Errorf("round trip = %d, want 2000", m)
	}
}

func TestMoneyUnmarshalAcceptsDisplayString(t *testing.T) {
	var item OrderItem
	payload := `{"productId":"p1","productName":"Espresso","quantity":2,"price":"$10.00"}`
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if item.Price != 1000 {
		t.Errorf("price = %d cents, want 1000", item.Price)
	}
	if got := item.Price.Mul(item.Quantity); got != 2000 {
		t.Errorf("subtotal = %d cents, want 2000", got)
	}
}

func TestMoneyUnmarshalRejectsGarbage(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"free"`), &m); err == nil {
		t.Error("expected error for non-numeric price string")
	}
	if err := json.Unmarshal([]byte(`true`), &m); err == nil {
		t.Error("expected error for boolean price")
	}
}
