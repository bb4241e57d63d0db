package domain

import "fmt"

// Cart domain errors.
var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartLineNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// CartLine is one entry in a shopper's cart. Identity is the
// (product, size, color) tuple: adding the same combination twice merges
// into one line by incrementing quantity.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// Key returns the line's identity key within a cart.
func (l CartLine) Key() string {
	return fmt.Sprintf("%s|%s|%s", l.ProductID, l.Size, l.Color)
}

// Cart is one shopper's session cart. It is ephemeral session state:
// load-modify-save through a cart store, never referenced by orders
// (orders snapshot their lines at creation).
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add merges a line into the cart. Same-key additions increment quantity
// rather than appending a duplicate line. Quantities below 1 are rejected.
func (c *Cart) Add(line CartLine) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}
	key := line.Key()
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines[i].Quantity += line.Quantity
			return nil
		}
	}
	c.Lines = append(c.Lines, line)
	return nil
}

// Increment raises the quantity of an existing line by one.
func (c *Cart) Increment(key string) error {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines[i].Quantity++
			return nil
		}
	}
	return ErrCartLineNotFound
}

// Decrement lowers the quantity of an existing line by one, with a floor
// of 1: decrementing a line at quantity 1 is a no-op. Lines leave the cart
// only through Remove or Clear.
func (c *Cart) Decrement(key string) error {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			if c.Lines[i].Quantity > 1 {
				c.Lines[i].Quantity--
			}
			return nil
		}
	}
	return ErrCartLineNotFound
}

// Remove deletes a line from the cart.
func (c *Cart) Remove(key string) error {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
	}
	return ErrCartLineNotFound
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, l := range c.Lines {
		n += int(l.Quantity)
	}
	return n
}
