package cart

import (
	"github.com/roasthouse/storefront/pkg/models"
)

// Ledger holds one browsing session's line items. It is deliberately
// unlocked: a session's mutations arrive from a single UI event loop,
// never concurrently. Items keep insertion order, with at most one
// entry per product id.
type Ledger struct {
	items     []models.LineItem
	observers []func()
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Subscribe registers a callback invoked after every mutation, used by
// the presentation layer to refresh badges and totals.
func (l *Ledger) Subscribe(fn func()) {
	l.observers = append(l.observers, fn)
}

func (l *Ledger) notify() {
	for _, fn := range l.observers {
		fn()
	}
}

// Add merges quantity into an existing line item for the same product,
// or appends a new one. Quantities below one default to one.
func (l *Ledger) Add(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range l.items {
		if l.items[i].Product.ID == product.ID {
			l.items[i].Quantity += quantity
			l.notify()
			return
		}
	}
	l.items = append(l.items, models.LineItem{Product: product, Quantity: quantity})
	l.notify()
}

// Remove drops the line item for productID. Removing an absent product
// is a no-op.
func (l *Ledger) Remove(productID string) {
	for i := range l.items {
		if l.items[i].Product.ID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.notify()
			return
		}
	}
}

// SetQuantity replaces the quantity for productID. A quantity of zero
// or less removes the item. Unknown product ids are ignored rather than
// creating an item from nothing.
func (l *Ledger) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		l.Remove(productID)
		return
	}
	for i := range l.items {
		if l.items[i].Product.ID == productID {
			l.items[i].Quantity = quantity
			l.notify()
			return
		}
	}
}

func (l *Ledger) Clear() {
	l.items = nil
	l.notify()
}

// Items returns a snapshot copy, so callers cannot mutate the ledger
// behind its back.
func (l *Ledger) Items() []models.LineItem {
	out := make([]models.LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Total recomputes the cart total from scratch on every call.
func (l *Ledger) Total() models.Money {
	var total models.Money
	for _, item := range l.items {
		total += item.Subtotal()
	}
	return total
}

// Count is the sum of all quantities, shown on the cart badge.
func (l *Ledger) Count() int {
	n := 0
	for _, item := range l.items {
		n += item.Quantity
	}
	return n
}
