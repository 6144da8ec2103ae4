package iorderrepo

import (
	"context"

	"github.com/corray333/orderflow/internal/service/models/order"
)

// IOrderRepository is the orders-table repository contract. It handles
// order rows only; products are owned by the product repository.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) error

	// Query returns all order rows, newest first, without products.
	Query(ctx context.Context) ([]order.Order, error)

	// Update replaces the order's scalar columns.
	Update(ctx context.Context, o order.Order) error

	Delete(ctx context.Context, orderID string) error
}
