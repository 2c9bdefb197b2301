package view

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"MiniCart/internal/cart"
	"MiniCart/internal/catalog"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type productDoc struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
	Price       string `json:"price" yaml:"price"`
}

type lineDoc struct {
	productDoc `yaml:",inline"`
	Amount     int    `json:"amount" yaml:"amount"`
	LineTotal  string `json:"line_total" yaml:"line_total"`
}

type cartDoc struct {
	Items      []lineDoc `json:"items" yaml:"items"`
	TotalCount int       `json:"total_count" yaml:"total_count"`
	TotalPrice string    `json:"total_price" yaml:"total_price"`
}

func toProductDoc(p catalog.Product) productDoc {
	return productDoc{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price.StringFixed(2),
	}
}

// CartDoc is the machine-readable rendition of a cart.
func CartDoc(c cart.Cart) any {
	doc := cartDoc{
		Items:      make([]lineDoc, 0, len(c)),
		TotalCount: cart.TotalCount(c),
		TotalPrice: cart.TotalPrice(c).StringFixed(2),
	}
	for _, it := range c {
		doc.Items = append(doc.Items, lineDoc{
			productDoc: toProductDoc(it.Product),
			Amount:     it.Amount,
			LineTotal:  it.LineTotal().StringFixed(2),
		})
	}
	return doc
}

// ProductsDoc is the machine-readable rendition of a product list.
func ProductsDoc(products []catalog.Product) any {
	out := make([]productDoc, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDoc(p))
	}
	return out
}

// Encode writes doc as json or yaml.
func Encode(w io.Writer, format string, doc any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
