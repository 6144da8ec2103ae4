package product

import (
	"strings"

	"github.com/corray333/orderflow/pkg/textutil"
)

// Product is one priced, quantified line item belonging to exactly one order.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	Compatibility string  `json:"compatibility"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
}

// Normalized returns a copy with name/compatibility trimmed and
// category/brand folded to title case.
func (p Product) Normalized() Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = textutil.ToTitleCase(p.Category)
	p.Brand = textutil.ToTitleCase(p.Brand)
	p.Compatibility = strings.TrimSpace(p.Compatibility)

	return p
}
