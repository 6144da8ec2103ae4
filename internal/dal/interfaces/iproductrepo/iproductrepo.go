package iproductrepo

import (
	"context"

	"github.com/corray333/orderflow/internal/service/models/product"
)

// IProductRepository is the order_products-table repository contract.
type IProductRepository interface {
	BulkInsert(ctx context.Context, orderID string, products []product.Product) error

	// Query returns all product rows keyed by their parent order id.
	Query(ctx context.Context) (map[string][]product.Product, error)

	// DeleteByOrder removes every product belonging to the order.
	DeleteByOrder(ctx context.Context, orderID string) error
}
