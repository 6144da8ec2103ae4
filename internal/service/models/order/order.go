package order

import (
	"time"

	"github.com/corray333/orderflow/internal/service/models/product"
	"github.com/corray333/orderflow/pkg/textutil"
)

// Order is a purchase record with its embedded line items.
// IDs are client-generated UUID strings.
type Order struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Supplier    string            `json:"supplier"`
	TotalAmount float64           `json:"totalAmount"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Products    []product.Product `json:"products"`
}

// Normalized returns a copy with the supplier folded to title case and
// every product normalized. Normalization is idempotent, so it is applied
// on both the write and the read path to converge stored and fresh data
// to the same canonical form.
func (o Order) Normalized() Order {
	o.Supplier = textutil.ToTitleCase(o.Supplier)

	products := make([]product.Product, len(o.Products))
	for i, p := range o.Products {
		products[i] = p.Normalized()
	}
	o.Products = products

	return o
}
