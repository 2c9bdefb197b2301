package catalog

import (
	"context"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[int]Product
}

// NewMemStore returns a store holding products. With no arguments it is
// seeded with SeedProducts.
func NewMemStore(products ...Product) *MemStore {
	if len(products) == 0 {
		products = SeedProducts()
	}
	s := &MemStore{m: make(map[int]Product, len(products))}
	for _, p := range products {
		s.m[p.ID] = p
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListSortedByID(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b Product) int { return a.ID - b.ID })
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}

// SeedProducts is a small slice of the public fake-store catalog.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          1,
			Category:    "men's clothing",
			Description: "Your perfect pack for everyday use and walks in the forest.",
			Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			Price:       decimal.RequireFromString("109.95"),
			Title:       "Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops",
		},
		{
			ID:          2,
			Category:    "men's clothing",
			Description: "Slim-fitting style, contrast raglan long sleeve, three-button henley placket.",
			Image:       "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
			Price:       decimal.RequireFromString("22.3"),
			Title:       "Mens Casual Premium Slim Fit T-Shirts ",
		},
		{
			ID:          5,
			Category:    "jewelery",
			Description: "From our Legends Collection, the Naga was inspired by the mythical water dragon.",
			Image:       "https://fakestoreapi.com/img/71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg",
			Price:       decimal.RequireFromString("695"),
			Title:       "John Hardy Women's Legends Naga Gold & Silver Dragon Station Chain Bracelet",
		},
		{
			ID:          9,
			Category:    "electronics",
			Description: "USB 3.0 and USB 2.0 compatibility, fast data transfers, improve PC performance.",
			Image:       "https://fakestoreapi.com/img/61IBBVJvSDL._AC_SY879_.jpg",
			Price:       decimal.RequireFromString("64"),
			Title:       "WD 2TB Elements Portable External Hard Drive - USB 3.0 ",
		},
		{
			ID:          18,
			Category:    "women's clothing",
			Description: "95% rayon, 5% spandex. Made in USA or imported.",
			Image:       "https://fakestoreapi.com/img/71z3kpMAYsL._AC_UY879_.jpg",
			Price:       decimal.RequireFromString("9.85"),
			Title:       "MBJ Women's Solid Short Sleeve Boat Neck V ",
		},
	}
}
