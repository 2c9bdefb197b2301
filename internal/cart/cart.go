// Package cart holds the cart model, its reducers and the store that mirrors
// the cart to durable storage after every mutation.
package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"MiniCart/internal/catalog"
)

// LineItem is a product together with the quantity held in the cart.
// It serialises flat: the product fields plus "amount".
type LineItem struct {
	catalog.Product
	Amount int `json:"amount"`
}

// Cart is kept in insertion order with at most one line per product id.
type Cart []LineItem

// AddItem returns a new cart with one more unit of p.
func AddItem(c Cart, p catalog.Product) Cart {
	i := c.index(p.ID)
	if i < 0 {
		out := make(Cart, len(c), len(c)+1)
		copy(out, c)
		return append(out, LineItem{Product: p, Amount: 1})
	}

	out := slices.Clone(c)
	out[i].Amount++
	return out
}

// RemoveItem returns a new cart with one unit of id taken out. A line that
// reaches zero is dropped; an unknown id leaves the cart unchanged.
func RemoveItem(c Cart, id int) Cart {
	i := c.index(id)
	if i < 0 {
		return slices.Clone(c)
	}

	if c[i].Amount > 1 {
		out := slices.Clone(c)
		out[i].Amount--
		return out
	}

	out := make(Cart, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...)
}

func TotalCount(c Cart) int {
	n := 0
	for _, it := range c {
		n += it.Amount
	}
	return n
}

// TotalPrice is the running total shown in the cart panel.
func TotalPrice(c Cart) decimal.Decimal {
	total := decimal.Zero
	for _, it := range c {
		total = total.Add(it.LineTotal())
	}
	return total
}

func (it LineItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Amount)))
}

// Find returns the line for id, if present.
func (c Cart) Find(id int) (LineItem, bool) {
	if i := c.index(id); i >= 0 {
		return c[i], true
	}
	return LineItem{}, false
}

func (c Cart) index(id int) int {
	return slices.IndexFunc(c, func(it LineItem) bool { return it.ID == id })
}
