package postgresstore

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/corray333/orderflow/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/orderflow/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/orderflow/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/orderflow/internal/dal/postgres"
	"github.com/corray333/orderflow/internal/dal/uow"
	"github.com/corray333/orderflow/internal/service/models/order"
	"github.com/corray333/orderflow/internal/service/models/outbox"
)

// Store is the relational adapter: orders and order_products tables
// related by order_id. Multi-statement sequences run in one transaction,
// and every write appends an order event to the outbox in the same
// transaction.
type Store struct {
	newUOW     func() unitOfWork
	queueName  string
	maxRetries int
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context)

	OrderRepository() iorderrepo.IOrderRepository
	ProductRepository() iproductrepo.IProductRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// NewStore creates the relational order store.
func NewStore(client *postgres.Client) *Store {
	queueName := viper.GetString("rabbitmq.outbox.queue_name")
	if queueName == "" {
		queueName = "order-events"
	}

	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return &Store{
		newUOW: func() unitOfWork {
			return uow.NewUnitOfWork(client)
		},
		queueName:  queueName,
		maxRetries: maxRetries,
	}
}

// SaveOrder inserts the order row, its product rows and an order.saved
// event in one transaction.
func (s *Store) SaveOrder(ctx context.Context, o order.Order) error {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx)

	if err := work.OrderRepository().Insert(ctx, o); err != nil {
		return err
	}

	if err := work.ProductRepository().BulkInsert(ctx, o.ID, o.Products); err != nil {
		return err
	}

	event := outbox.NewOrderEvent(outbox.EventOrderSaved, o.ID, s.queueName, s.maxRetries)
	if err := work.OutboxRepository().Insert(ctx, event); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit save order: %w", err)
	}

	return nil
}

// GetOrders fetches all orders and all products, then joins products to
// their parent order by order_id in memory.
func (s *Store) GetOrders(ctx context.Context) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	products, err := work.ProductRepository().Query(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if items, ok := products[orders[i].ID]; ok {
			orders[i].Products = items
		}
	}

	return orders, nil
}

// DeleteOrder removes the product rows before the order row to satisfy
// the foreign key, in one transaction.
func (s *Store) DeleteOrder(ctx context.Context, orderID string) error {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx)

	if err := work.ProductRepository().DeleteByOrder(ctx, orderID); err != nil {
		return err
	}

	if err := work.OrderRepository().Delete(ctx, orderID); err != nil {
		return err
	}

	event := outbox.NewOrderEvent(outbox.EventOrderDeleted, orderID, s.queueName, s.maxRetries)
	if err := work.OutboxRepository().Insert(ctx, event); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete order: %w", err)
	}

	return nil
}

// UpdateOrder replaces the order's scalar columns and its whole product
// list. Products are deleted and reinserted rather than diffed.
func (s *Store) UpdateOrder(ctx context.Context, o order.Order) error {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx)

	if err := work.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err := work.ProductRepository().DeleteByOrder(ctx, o.ID); err != nil {
		return err
	}

	if err := work.ProductRepository().BulkInsert(ctx, o.ID, o.Products); err != nil {
		return err
	}

	event := outbox.NewOrderEvent(outbox.EventOrderUpdated, o.ID, s.queueName, s.maxRetries)
	if err := work.OutboxRepository().Insert(ctx, event); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit update order: %w", err)
	}

	return nil
}
