// Package cart holds the session-scoped shopping cart: an insertion-ordered
// list of product/quantity pairs with derived totals. Quantities are
// kilograms and never drop below one; removing an item is an explicit
// operation, not a side effect of a quantity update.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot carried inside a cart item.
type Product struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	PricePerKG decimal.Decimal `json:"price_per_kg"`
	ImageURL   string          `json:"image_url"`
}

// Item pairs a product with the requested kilograms.
type Item struct {
	Product    Product         `json:"product"`
	QuantityKG decimal.Decimal `json:"quantity_kg"`
}

// Cart is the ordered item list for one session.
type Cart struct {
	Items []Item `json:"items"`
}

var one = decimal.NewFromInt(1)

// AddItem increments the quantity of an existing item by one kilogram, or
// appends a new item at quantity one. At most one item exists per product.
func (c *Cart) AddItem(product Product) {
	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID {
			c.Items[i].QuantityKG = c.Items[i].QuantityKG.Add(one)
			return
		}
	}
	c.Items = append(c.Items, Item{Product: product, QuantityKG: one})
}

// RemoveItem deletes the matching item; no-op when absent.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity for the matching item, floored at one.
// The floor means this operation can never empty a slot; only RemoveItem
// takes items out of the cart.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantityKG decimal.Decimal) {
	if quantityKG.LessThan(one) {
		quantityKG = one
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].QuantityKG = quantityKG
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total recomputes the sum of quantity x price over all items.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.QuantityKG.Mul(item.Product.PricePerKG))
	}
	return total
}

// Count recomputes the sum of quantities.
func (c *Cart) Count() decimal.Decimal {
	count := decimal.Zero
	for _, item := range c.Items {
		count = count.Add(item.QuantityKG)
	}
	return count
}
