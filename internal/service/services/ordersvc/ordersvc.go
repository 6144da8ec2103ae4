package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/corray333/orderflow/internal/dal/interfaces/iorderstore"
	"github.com/corray333/orderflow/internal/service/models/order"
)

// OrderService is the order persistence gateway. It normalizes orders on
// the way in and out and delegates storage to the configured adapter.
//
// Failure handling is deliberately asymmetric: write operations log and
// propagate their error, the read operation logs and degrades to an empty
// list so the UI keeps rendering during a storage outage.
type OrderService struct {
	store iorderstore.Store
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		panic("ordersvc: no storage adapter configured")
	}

	return s
}

// WithStore sets the storage adapter for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStore(store iorderstore.Store) option {
	return func(s *OrderService) {
		s.store = store
	}
}

// SaveOrder normalizes the order and creates it in the store.
func (s *OrderService) SaveOrder(ctx context.Context, o order.Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	o = o.Normalized()

	if err := s.store.SaveOrder(ctx, o); err != nil {
		slog.Error("Failed to save order", "order_id", o.ID, "error", err)

		return err
	}

	return nil
}

// GetOrders returns all stored orders with normalization re-applied to
// every text field. Any store failure yields an empty slice, never an
// error.
func (s *OrderService) GetOrders(ctx context.Context) []order.Order {
	orders, err := s.store.GetOrders(ctx)
	if err != nil {
		slog.Error("Failed to fetch orders", "error", err)

		return []order.Order{}
	}

	normalized := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		normalized = append(normalized, o.Normalized())
	}

	return normalized
}

// DeleteOrder removes the order and its products from the store.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.store.DeleteOrder(ctx, orderID); err != nil {
		slog.Error("Failed to delete order", "order_id", orderID, "error", err)

		return err
	}

	return nil
}

// UpdateOrder normalizes the order and replaces it in the store, product
// list included.
func (s *OrderService) UpdateOrder(ctx context.Context, o order.Order) error {
	o.UpdatedAt = time.Now()
	o = o.Normalized()

	if err := s.store.UpdateOrder(ctx, o); err != nil {
		slog.Error("Failed to update order", "order_id", o.ID, "error", err)

		return err
	}

	return nil
}
