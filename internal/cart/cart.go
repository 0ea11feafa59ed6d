package cart

import (
	"github.com/google/uuid"

	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
)

// Item is a single cart line. At most one Item exists per product id.
type Item struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Quantity   int       `json:"quantity"`
	ImageURL   string    `json:"image_url,omitempty"`
}

// Cart holds the in-session purchase intent. TotalQuantity and
// TotalAmountCents are derived from Items and recomputed after every
// mutation by a full scan; they are never settable independently.
type Cart struct {
	Items            []Item `json:"items"`
	TotalQuantity    int    `json:"total_quantity"`
	TotalAmountCents int64  `json:"total_amount_cents"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: []Item{}}
}

// AddItem merges the given line into the cart. Adding a product id that is
// already present increments its quantity instead of duplicating the line.
func (c *Cart) AddItem(item Item) error {
	if item.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if item.PriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if item.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.recomputeTotals()
			return nil
		}
	}

	c.Items = append(c.Items, item)
	c.recomputeTotals()
	return nil
}

// RemoveItem drops the line matching the product id. Removing an absent id is
// a no-op, not an error.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	c.recomputeTotals()
}

// UpdateItem sets the quantity of the matching line directly (not additive).
// A quantity of zero or less removes the line; carrying a non-positive line
// would break every downstream totals assumption.
func (c *Cart) UpdateItem(productID uuid.UUID, quantity int) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.recomputeTotals()
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
}

// Clear empties the cart. Calling it on an already-empty cart yields the same
// empty state.
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.recomputeTotals()
}

// Item returns the line matching the product id.
func (c *Cart) Item(productID uuid.UUID) (Item, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return Item{}, false
}

// Contains reports whether the product id has a line in the cart.
func (c *Cart) Contains(productID uuid.UUID) bool {
	_, ok := c.Item(productID)
	return ok
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Snapshot returns a deep copy of the current lines, so an order built from
// it is unaffected by later cart mutations.
func (c *Cart) Snapshot() []Item {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	return items
}

// Full linear scan on every mutation: carts hold tens of items, and the scan
// avoids drift bugs an incremental accumulator would invite.
func (c *Cart) recomputeTotals() {
	var qty int
	var amount int64
	for _, item := range c.Items {
		qty += item.Quantity
		amount += item.PriceCents * int64(item.Quantity)
	}
	c.TotalQuantity = qty
	c.TotalAmountCents = amount
	if c.Items == nil {
		c.Items = []Item{}
	}
}
