package domain

import (
	"errors"

	catalog "github.com/dwikikusuma/sportsstore/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned by AddItem for a zero or negative
// quantity.
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// Line is one (product, quantity) pairing inside a Cart.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Subtotal is the line's unit price times its quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the lines of one shopping session. Lines keep the insertion
// order of the first occurrence of each product; a product appears in at
// most one line, keyed by product id so the merge survives serialization.
//
// A Cart is exclusively owned by its session and does no locking of its
// own.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges qty into the existing line for the product, or appends
// a new line at the end.
func (c *Cart) AddItem(p catalog.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity += qty
			return nil
		}
	}

	c.lines = append(c.lines, Line{Product: p, Quantity: qty})
	return nil
}

// RemoveLine deletes the whole line for the product id, regardless of
// quantity. Removing an absent product is a no-op.
func (c *Cart) RemoveLine(productID int64) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total sums price times quantity over all lines in exact decimal
// arithmetic. An empty cart totals zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
