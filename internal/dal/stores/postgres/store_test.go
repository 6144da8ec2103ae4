package postgresstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/orderflow/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/orderflow/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/orderflow/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/orderflow/internal/service/models/order"
	"github.com/corray333/orderflow/internal/service/models/outbox"
	"github.com/corray333/orderflow/internal/service/models/product"
)

// fakeTables is the shared in-memory database behind fake units of work.
type fakeTables struct {
	orders   []order.Order
	products map[string][]product.Product
	events   []outbox.Message
}

func newFakeTables() *fakeTables {
	return &fakeTables{products: map[string][]product.Product{}}
}

func (t *fakeTables) clone() *fakeTables {
	c := newFakeTables()
	c.orders = append(c.orders, t.orders...)
	c.events = append(c.events, t.events...)
	for id, items := range t.products {
		c.products[id] = append([]product.Product{}, items...)
	}

	return c
}

// fakeUOW applies writes immediately and restores a snapshot on rollback,
// so a failed sequence leaves no partial rows behind.
type fakeUOW struct {
	tables    *fakeTables
	snapshot  *fakeTables
	failOn    string
	calls     []string
	committed bool
}

func (u *fakeUOW) Begin(_ context.Context) error {
	u.calls = append(u.calls, "begin")
	u.snapshot = u.tables.clone()

	return nil
}

func (u *fakeUOW) Commit(_ context.Context) error {
	u.calls = append(u.calls, "commit")
	u.committed = true

	return nil
}

func (u *fakeUOW) Rollback(_ context.Context) {
	if u.committed || u.snapshot == nil {
		return
	}
	u.calls = append(u.calls, "rollback")
	*u.tables = *u.snapshot
}

func (u *fakeUOW) step(name string) error {
	u.calls = append(u.calls, name)
	if u.failOn == name {
		return errors.New(name + " failed")
	}

	return nil
}

func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository {
	return &fakeOrderRepo{u: u}
}

func (u *fakeUOW) ProductRepository() iproductrepo.IProductRepository {
	return &fakeProductRepo{u: u}
}

func (u *fakeUOW) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return &fakeOutboxRepo{u: u}
}

type fakeOrderRepo struct{ u *fakeUOW }

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) error {
	if err := r.u.step("order.insert"); err != nil {
		return err
	}
	r.u.tables.orders = append(r.u.tables.orders, o)

	return nil
}

func (r *fakeOrderRepo) Query(_ context.Context) ([]order.Order, error) {
	if err := r.u.step("order.query"); err != nil {
		return nil, err
	}
	rows := make([]order.Order, 0, len(r.u.tables.orders))
	for i := len(r.u.tables.orders) - 1; i >= 0; i-- {
		o := r.u.tables.orders[i]
		o.Products = nil
		rows = append(rows, o)
	}

	return rows, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o order.Order) error {
	if err := r.u.step("order.update"); err != nil {
		return err
	}
	for i := range r.u.tables.orders {
		if r.u.tables.orders[i].ID == o.ID {
			r.u.tables.orders[i] = o
		}
	}

	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, orderID string) error {
	if err := r.u.step("order.delete"); err != nil {
		return err
	}
	for i := range r.u.tables.orders {
		if r.u.tables.orders[i].ID == orderID {
			r.u.tables.orders = append(r.u.tables.orders[:i], r.u.tables.orders[i+1:]...)

			break
		}
	}

	return nil
}

type fakeProductRepo struct{ u *fakeUOW }

func (r *fakeProductRepo) BulkInsert(_ context.Context, orderID string, products []product.Product) error {
	if err := r.u.step("product.bulkInsert"); err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}
	r.u.tables.products[orderID] = append(r.u.tables.products[orderID], products...)

	return nil
}

func (r *fakeProductRepo) Query(_ context.Context) (map[string][]product.Product, error) {
	if err := r.u.step("product.query"); err != nil {
		return nil, err
	}
	rows := map[string][]product.Product{}
	for id, items := range r.u.tables.products {
		rows[id] = append([]product.Product{}, items...)
	}

	return rows, nil
}

func (r *fakeProductRepo) DeleteByOrder(_ context.Context, orderID string) error {
	if err := r.u.step("product.deleteByOrder"); err != nil {
		return err
	}
	delete(r.u.tables.products, orderID)

	return nil
}

type fakeOutboxRepo struct{ u *fakeUOW }

func (r *fakeOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	if err := r.u.step("outbox.insert"); err != nil {
		return err
	}
	r.u.tables.events = append(r.u.tables.events, msg)

	return nil
}

func (r *fakeOutboxRepo) GetPendingMessages(_ context.Context, _ int) ([]outbox.Message, error) {
	return append([]outbox.Message{}, r.u.tables.events...), nil
}

func (r *fakeOutboxRepo) Delete(_ context.Context, _ int64) error { return nil }

func (r *fakeOutboxRepo) UpdateRetry(_ context.Context, _ int64, _ int, _ string, _ time.Time) error {
	return nil
}

// newTestStore wires a Store to fake units of work over shared tables and
// returns the list of units handed out, newest last.
func newTestStore(tables *fakeTables, failOn string) (*Store, *[]*fakeUOW) {
	uows := &[]*fakeUOW{}
	s := &Store{
		newUOW: func() unitOfWork {
			u := &fakeUOW{tables: tables, failOn: failOn}
			*uows = append(*uows, u)

			return u
		},
		queueName:  "order-events",
		maxRetries: 5,
	}

	return s, uows
}

func testOrder(id string) order.Order {
	return order.Order{
		ID:          id,
		Date:        "2024-03-15",
		Supplier:    "Acme Corp",
		TotalAmount: 249.99,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Products: []product.Product{
			{ID: id + "-p1", Name: "brake pads", Category: "Brakes", Price: 249.99, Quantity: 2},
		},
	}
}

func eventTypes(events []outbox.Message) []string {
	types := make([]string, 0, len(events))
	for _, msg := range events {
		var payload struct {
			Event   string `json:"event"`
			OrderID string `json:"orderId"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			continue
		}
		types = append(types, payload.Event)
	}

	return types
}

func TestSaveOrderWritesRowsAndEventInOneTransaction(t *testing.T) {
	tables := newFakeTables()
	store, uows := newTestStore(tables, "")

	require.NoError(t, store.SaveOrder(context.Background(), testOrder("ord-1")))

	require.Len(t, *uows, 1)
	work := (*uows)[0]
	assert.Equal(t, []string{
		"begin",
		"order.insert",
		"product.bulkInsert",
		"outbox.insert",
		"commit",
	}, work.calls)

	require.Len(t, tables.orders, 1)
	assert.Len(t, tables.products["ord-1"], 1)
	assert.Equal(t, []string{outbox.EventOrderSaved}, eventTypes(tables.events))
	assert.Equal(t, "order-events", tables.events[0].QueueName)
}

func TestGetOrdersJoinsProductsByOrderID(t *testing.T) {
	tables := newFakeTables()
	store, _ := newTestStore(tables, "")

	first := testOrder("ord-1")
	second := testOrder("ord-2")
	second.Products = nil
	require.NoError(t, store.SaveOrder(context.Background(), first))
	require.NoError(t, store.SaveOrder(context.Background(), second))

	orders, err := store.GetOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "ord-2", orders[0].ID)
	assert.Empty(t, orders[0].Products)

	assert.Equal(t, "ord-1", orders[1].ID)
	require.Len(t, orders[1].Products, 1)
	assert.Equal(t, "brake pads", orders[1].Products[0].Name)
}

func TestGetOrdersEmptyTableReturnsEmptySlice(t *testing.T) {
	store, _ := newTestStore(newFakeTables(), "")

	orders, err := store.GetOrders(context.Background())
	require.NoError(t, err)
	require.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestDeleteOrderRemovesProductsBeforeOrder(t *testing.T) {
	tables := newFakeTables()
	store, uows := newTestStore(tables, "")

	require.NoError(t, store.SaveOrder(context.Background(), testOrder("ord-1")))
	require.NoError(t, store.DeleteOrder(context.Background(), "ord-1"))

	require.Len(t, *uows, 2)
	work := (*uows)[1]
	assert.Equal(t, []string{
		"begin",
		"product.deleteByOrder",
		"order.delete",
		"outbox.insert",
		"commit",
	}, work.calls)

	assert.Empty(t, tables.orders)
	assert.Empty(t, tables.products)
	assert.Equal(t, []string{outbox.EventOrderSaved, outbox.EventOrderDeleted}, eventTypes(tables.events))
}

func TestUpdateOrderReplacesWholeProductList(t *testing.T) {
	tables := newFakeTables()
	store, _ := newTestStore(tables, "")

	require.NoError(t, store.SaveOrder(context.Background(), testOrder("ord-1")))

	updated := testOrder("ord-1")
	updated.Supplier = "New Supplier"
	updated.Products = []product.Product{
		{ID: "ord-1-p2", Name: "rotor", Quantity: 1},
		{ID: "ord-1-p3", Name: "caliper", Quantity: 2},
		{ID: "ord-1-p4", Name: "fluid", Quantity: 4},
	}
	require.NoError(t, store.UpdateOrder(context.Background(), updated))

	require.Len(t, tables.orders, 1)
	assert.Equal(t, "New Supplier", tables.orders[0].Supplier)

	rows := tables.products["ord-1"]
	require.Len(t, rows, 3)
	assert.Equal(t, "ord-1-p2", rows[0].ID)
	assert.Equal(t, "ord-1-p4", rows[2].ID)
}

func TestSaveOrderFailedStepRollsBackEverything(t *testing.T) {
	tables := newFakeTables()
	store, uows := newTestStore(tables, "product.bulkInsert")

	err := store.SaveOrder(context.Background(), testOrder("ord-1"))
	require.Error(t, err)

	require.Len(t, *uows, 1)
	work := (*uows)[0]
	assert.False(t, work.committed)
	assert.Contains(t, work.calls, "rollback")

	assert.Empty(t, tables.orders)
	assert.Empty(t, tables.products)
	assert.Empty(t, tables.events)
}

func TestUpdateOrderFailedReinsertRollsBackDeletion(t *testing.T) {
	tables := newFakeTables()
	store, _ := newTestStore(tables, "")

	require.NoError(t, store.SaveOrder(context.Background(), testOrder("ord-1")))

	failing, _ := newTestStore(tables, "product.bulkInsert")
	err := failing.UpdateOrder(context.Background(), testOrder("ord-1"))
	require.Error(t, err)

	require.Len(t, tables.orders, 1)
	assert.Len(t, tables.products["ord-1"], 1)
	assert.Equal(t, []string{outbox.EventOrderSaved}, eventTypes(tables.events))
}
