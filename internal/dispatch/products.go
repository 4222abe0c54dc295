package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/safedrive/safedrive/internal/domain"
)

// productList is the structured result of list_products.
type productList struct {
	Products []domain.Product
}

func (d *Dispatcher) listProducts(ctx context.Context) (record, error) {
	products, err := d.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return productList{Products: products}, nil
}

func (r productList) render() string {
	if len(r.Products) == 0 {
		return "No insurance products are currently available."
	}

	var b strings.Builder
	b.WriteString("Available Insurance Products:")
	for _, p := range r.Products {
		fmt.Fprintf(&b, "\n\n%s (%s)", p.Name, p.CoverageType)
		fmt.Fprintf(&b, "\n  Base Price: €%g/year", p.BasePrice)
		fmt.Fprintf(&b, "\n  Description: %s", p.Description)
		b.WriteString("\n  Features:")
		for _, f := range p.FeatureList() {
			fmt.Fprintf(&b, "\n  • %s", f)
		}
	}
	return b.String()
}
