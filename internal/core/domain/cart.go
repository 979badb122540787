package domain

import "github.com/shopspring/decimal"

// CartLine flattens the product fields next to the quantity when encoded.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in insertion order with at most one line per product id.
// Quantities never drop below one; removal is explicit.
type Cart struct {
	lines []CartLine
}

func NewCart(lines []CartLine) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i := c.index(l.ID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

func (c *Cart) index(productID string) int {
	for i := range c.lines {
		if c.lines[i].ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Add(p Product) CartLine {
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity++
		return c.lines[i]
	}
	line := CartLine{Product: p, Quantity: 1}
	c.lines = append(c.lines, line)
	return line
}

// UpdateQuantity applies delta to the line. A result below one leaves the line
// untouched and reports changed=false.
func (c *Cart) UpdateQuantity(productID string, delta int) (line CartLine, found, changed bool) {
	i := c.index(productID)
	if i < 0 {
		return CartLine{}, false, false
	}
	next := c.lines[i].Quantity + delta
	if next <= 0 {
		return c.lines[i], true, false
	}
	c.lines[i].Quantity = next
	return c.lines[i], true, delta != 0
}

func (c *Cart) Remove(productID string) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// RemoveProduct drops every line that references productID and returns how
// many were dropped.
func (c *Cart) RemoveProduct(productID string) int {
	kept := c.lines[:0]
	removed := 0
	for _, l := range c.lines {
		if l.ID == productID {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	c.lines = kept
	return removed
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Units() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy decoupled from later cart mutations.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}
