package iorderstore

import (
	"context"

	"github.com/corray333/orderflow/internal/service/models/order"
)

// Store is the storage adapter contract behind the order persistence
// gateway. Both the relational and the document implementation satisfy it;
// the adapter is selected by configuration at wiring time.
type Store interface {
	// SaveOrder creates the order with its products.
	SaveOrder(ctx context.Context, o order.Order) error

	// GetOrders returns every stored order with its products, newest first.
	GetOrders(ctx context.Context) ([]order.Order, error)

	// DeleteOrder removes the order and its products.
	DeleteOrder(ctx context.Context, orderID string) error

	// UpdateOrder replaces the order's scalar fields and its whole
	// product list.
	UpdateOrder(ctx context.Context, o order.Order) error
}
