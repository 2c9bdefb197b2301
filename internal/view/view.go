// Package view renders the cart badge, the cart panel and the product list
// for terminals, plus plain json/yaml renditions for scripting.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"MiniCart/internal/cart"
	"MiniCart/internal/catalog"
)

var (
	accent = lipgloss.Color("#e53935")
	muted  = lipgloss.Color("#8a8f98")

	badgeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(accent).Padding(0, 1)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(muted)
)

// Badge renders the cart icon with the running unit count.
func Badge(count int) string {
	return "Cart " + badgeStyle.Render(fmt.Sprintf("%d", count))
}

// Panel renders the side panel listing cart contents and the total.
func Panel(c cart.Cart) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your Shopping Cart"))
	b.WriteString("\n\n")

	if len(c) == 0 {
		b.WriteString(mutedStyle.Render("No items in cart."))
		b.WriteString("\n")
	}

	for _, it := range c {
		b.WriteString(titleStyle.Render(it.Title))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Price: $%s  Total: $%s\n", it.Price.StringFixed(2), it.LineTotal().StringFixed(2))
		fmt.Fprintf(&b, "  [-] %d [+]  %s\n", it.Amount, mutedStyle.Render(fmt.Sprintf("#%d", it.ID)))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: $%s", cart.TotalPrice(c).StringFixed(2))

	return panelStyle.Render(b.String())
}

// Products renders the catalog grid as a list.
func Products(products []catalog.Product) string {
	if len(products) == 0 {
		return mutedStyle.Render("No products.")
	}

	var b strings.Builder
	for i, p := range products {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", mutedStyle.Render(fmt.Sprintf("#%-3d", p.ID)), titleStyle.Render(p.Title))
		fmt.Fprintf(&b, "     $%s  %s\n", p.Price.StringFixed(2), mutedStyle.Render(p.Category))
	}
	return b.String()
}
