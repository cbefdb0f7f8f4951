package cart

// Cart is the authoritative in-memory aggregate of line items. Items keep
// insertion order; order matters only for display, never for pricing. Every
// public operation is all-or-nothing with respect to the in-memory structure.
// The aggregate itself is not goroutine-safe: the owning service serializes
// mutations (single writer per cart).
type Cart struct {
	items []LineItem
}

// New creates an empty cart
func New() *Cart {
	return &Cart{items: make([]LineItem, 0)}
}

// FromItems creates a cart from previously persisted line items
func FromItems(items []LineItem) *Cart {
	c := New()
	c.items = append(c.items, items...)
	return c
}

// Items returns a copy of the current line items in insertion order
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// IsEmpty returns true if the cart holds no line items
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// AddConfiguredItem adds a dimension-configured product to the cart. Identity
// is derived from the product and the exact entered dimensions: a repeat add
// of the same identity increments the existing line's quantity instead of
// creating a new row. Incrementing past MaxQuantity is a silent no-op.
func (c *Cart) AddConfiguredItem(productID, productName string, width, height float64, unitPriceMinorUnits int64) LineItem {
	id := ConfiguredItemID(productID, width, height)

	for i := range c.items {
		if c.items[i].ID == id {
			if c.items[i].Quantity < MaxQuantity {
				c.items[i].Quantity++
			}
			return c.items[i]
		}
	}

	item := LineItem{
		ID:                  id,
		ProductID:           productID,
		ProductName:         productName,
		Kind:                KindConfigured,
		Width:               width,
		Height:              height,
		Quantity:            1,
		UnitPriceMinorUnits: unitPriceMinorUnits,
	}
	c.items = append(c.items, item)
	return item
}

// AddSample adds a fixed-price swatch sample for the product. The call is
// idempotent: at most one sample line exists per product regardless of how
// many times it is requested, and its quantity stays pinned at 1.
func (c *Cart) AddSample(productID, productName string, unitPriceMinorUnits int64) LineItem {
	id := SampleItemID(productID)

	for i := range c.items {
		if c.items[i].ID == id {
			return c.items[i]
		}
	}

	item := LineItem{
		ID:                  id,
		ProductID:           productID,
		ProductName:         productName,
		Kind:                KindSample,
		Quantity:            1,
		UnitPriceMinorUnits: unitPriceMinorUnits,
	}
	c.items = append(c.items, item)
	return item
}

// UpdateQuantity sets the quantity of a line item. Quantities outside
// [MinQuantity, MaxQuantity] are rejected as a no-op, and sample lines are
// never user-adjustable. Returns true if the cart changed.
func (c *Cart) UpdateQuantity(itemID string, quantity int64) bool {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return false
	}
	for i := range c.items {
		if c.items[i].ID == itemID {
			if c.items[i].Kind == KindSample {
				return false
			}
			if c.items[i].Quantity == quantity {
				return false
			}
			c.items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveItem removes a line item by id. Removing an id that is not present is
// a no-op, not an error. Returns true if the cart changed.
func (c *Cart) RemoveItem(itemID string) bool {
	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart unconditionally
func (c *Cart) Clear() {
	c.items = c.items[:0]
}

// TotalPriceMinorUnits returns the sum of unit price times quantity over all
// line items. It is recomputed from current items on every call and never
// cached, so it cannot drift from the line items.
func (c *Cart) TotalPriceMinorUnits() int64 {
	var total int64
	for i := range c.items {
		total += c.items[i].LineTotalMinorUnits()
	}
	return total
}

// ItemCount returns the sum of quantities over all line items
func (c *Cart) ItemCount() int64 {
	var count int64
	for i := range c.items {
		count += c.items[i].Quantity
	}
	return count
}
