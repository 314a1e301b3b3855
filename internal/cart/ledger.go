package cart

import (
	"github.com/angelmondragon/freshcart/internal/catalog"
)

// Line pairs a product with how many units the shopper wants.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price × quantity, unrounded.
func (l Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Ledger is one session's cart. It keeps at most one line per product id,
// in the order products were first added, and every line has Quantity >= 1.
//
// A Ledger is not safe for concurrent use; the owner serialises access.
type Ledger struct {
	lines []Line
}

// NewLedger returns an empty cart.
func NewLedger() *Ledger {
	return &Ledger{}
}

// AddItem bumps the product's line by one, appending a new line on first add.
// Stock is not checked here.
func (l *Ledger) AddItem(product catalog.Product) {
	if i := l.find(product.ID); i >= 0 {
		l.lines[i].Quantity++
		return
	}
	l.lines = append(l.lines, Line{Product: product, Quantity: 1})
}

// SetQuantity overwrites a line's quantity. Zero or less removes the line;
// unknown ids are ignored.
func (l *Ledger) SetQuantity(productID string, quantity int) {
	i := l.find(productID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		l.removeAt(i)
		return
	}
	l.lines[i].Quantity = quantity
}

// RemoveItem drops the product's line if there is one.
func (l *Ledger) RemoveItem(productID string) {
	if i := l.find(productID); i >= 0 {
		l.removeAt(i)
	}
}

// Clear empties the cart.
func (l *Ledger) Clear() {
	l.lines = nil
}

// TotalItemCount sums the quantities of every line.
func (l *Ledger) TotalItemCount() int {
	total := 0
	for _, line := range l.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums price × quantity over every line. No rounding is applied.
func (l *Ledger) TotalPrice() float64 {
	var total float64
	for _, line := range l.lines {
		total += line.Subtotal()
	}
	return total
}

// Lines returns a copy of the lines in insertion order.
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Line returns the line for a product id.
func (l *Ledger) Line(productID string) (Line, bool) {
	if i := l.find(productID); i >= 0 {
		return l.lines[i], true
	}
	return Line{}, false
}

// Len is the number of distinct products in the cart.
func (l *Ledger) Len() int {
	return len(l.lines)
}

// IsEmpty reports whether the cart has no lines.
func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

func (l *Ledger) find(productID string) int {
	for i := range l.lines {
		if l.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (l *Ledger) removeAt(i int) {
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
}
