package ordersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/orderflow/internal/service/models/order"
	"github.com/corray333/orderflow/internal/service/models/product"
)

// fakeStore is an in-memory storage adapter for gateway tests.
type fakeStore struct {
	orders []order.Order
	err    error
}

func (f *fakeStore) SaveOrder(_ context.Context, o order.Order) error {
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, o)

	return nil
}

func (f *fakeStore) GetOrders(_ context.Context) ([]order.Order, error) {
	if f.err != nil {
		return nil, f.err
	}

	return append([]order.Order{}, f.orders...), nil
}

func (f *fakeStore) DeleteOrder(_ context.Context, orderID string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)

			return nil
		}
	}

	return nil
}

func (f *fakeStore) UpdateOrder(_ context.Context, o order.Order) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.orders {
		if f.orders[i].ID == o.ID {
			f.orders[i] = o

			return nil
		}
	}

	return errors.New("order not found")
}

func newTestOrder() order.Order {
	return order.Order{
		ID:       uuid.NewString(),
		Date:     "2025-03-15",
		Supplier: "  acme CORP ",
		Products: []product.Product{
			{
				ID:            uuid.NewString(),
				Name:          "  brake pads ",
				Category:      "BRAKES",
				Brand:         "bosch",
				Compatibility: " golf mk7 ",
				Price:         49.90,
				Quantity:      2,
			},
		},
		TotalAmount: 99.80,
	}
}

func TestSaveOrderNormalizes(t *testing.T) {
	store := &fakeStore{}
	svc := MustNewOrderService(WithStore(store))

	o := newTestOrder()
	require.NoError(t, svc.SaveOrder(context.Background(), o))

	orders := svc.GetOrders(context.Background())
	require.Len(t, orders, 1)

	got := orders[0]
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, "Acme Corp", got.Supplier)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())

	require.Len(t, got.Products, 1)
	p := got.Products[0]
	assert.Equal(t, "brake pads", p.Name)
	assert.Equal(t, "Brakes", p.Category)
	assert.Equal(t, "Bosch", p.Brand)
	assert.Equal(t, "golf mk7", p.Compatibility)
	assert.Equal(t, 49.90, p.Price)
	assert.Equal(t, 2, p.Quantity)
}

func TestGetOrdersNormalizesStoredData(t *testing.T) {
	// Data written before normalization existed must still come out canonical.
	store := &fakeStore{orders: []order.Order{
		{
			ID:       uuid.NewString(),
			Supplier: "  legacy SUPPLIER ",
			Products: []product.Product{
				{ID: uuid.NewString(), Name: " filter ", Brand: "MANN"},
			},
		},
	}}
	svc := MustNewOrderService(WithStore(store))

	orders := svc.GetOrders(context.Background())
	require.Len(t, orders, 1)
	assert.Equal(t, "Legacy Supplier", orders[0].Supplier)
	assert.Equal(t, "filter", orders[0].Products[0].Name)
	assert.Equal(t, "Mann", orders[0].Products[0].Brand)
}

func TestGetOrdersSwallowsReadFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("storage outage")}
	svc := MustNewOrderService(WithStore(store))

	orders := svc.GetOrders(context.Background())
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

// nilSliceStore reports success with a nil slice, as an adapter is free
// to do for an empty collection.
type nilSliceStore struct{ fakeStore }

func (n *nilSliceStore) GetOrders(_ context.Context) ([]order.Order, error) {
	return nil, nil
}

func TestGetOrdersNeverReturnsNilSlice(t *testing.T) {
	svc := MustNewOrderService(WithStore(&nilSliceStore{}))

	orders := svc.GetOrders(context.Background())
	require.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestWriteFailuresPropagate(t *testing.T) {
	outage := errors.New("storage outage")
	store := &fakeStore{err: outage}
	svc := MustNewOrderService(WithStore(store))

	ctx := context.Background()
	o := newTestOrder()

	assert.ErrorIs(t, svc.SaveOrder(ctx, o), outage)
	assert.ErrorIs(t, svc.UpdateOrder(ctx, o), outage)
	assert.ErrorIs(t, svc.DeleteOrder(ctx, o.ID), outage)
}

func TestDeleteOrderRemovesOrder(t *testing.T) {
	store := &fakeStore{}
	svc := MustNewOrderService(WithStore(store))

	ctx := context.Background()
	o := newTestOrder()
	require.NoError(t, svc.SaveOrder(ctx, o))
	require.NoError(t, svc.DeleteOrder(ctx, o.ID))

	for _, got := range svc.GetOrders(ctx) {
		assert.NotEqual(t, o.ID, got.ID)
	}
}

func TestUpdateOrderReplacesProductList(t *testing.T) {
	store := &fakeStore{}
	svc := MustNewOrderService(WithStore(store))

	ctx := context.Background()
	o := newTestOrder()
	require.NoError(t, svc.SaveOrder(ctx, o))

	// Replace the single product with three others; no duplicate
	// accumulation from the delete-then-reinsert step.
	o.Products = []product.Product{
		{ID: uuid.NewString(), Name: "oil filter", Brand: "mann", Quantity: 1, Price: 9.90},
		{ID: uuid.NewString(), Name: "air filter", Brand: "mahle", Quantity: 1, Price: 14.50},
		{ID: uuid.NewString(), Name: "cabin filter", Brand: "bosch", Quantity: 1, Price: 12.00},
	}
	require.NoError(t, svc.UpdateOrder(ctx, o))

	orders := svc.GetOrders(ctx)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Products, 3)
}

func TestMustNewOrderServiceWithoutStorePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewOrderService()
	})
}
