package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a read-only catalog record in the fake-store wire shape.
type Product struct {
	ID          int             `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Title       string          `json:"title"`
}

type Store interface {
	ListSortedByID(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, bool, error)
	Ping(ctx context.Context) error
}
