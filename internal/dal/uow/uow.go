package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corray333/orderflow/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/orderflow/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/orderflow/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/orderflow/internal/dal/postgres"
	orderrepo "github.com/corray333/orderflow/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/corray333/orderflow/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/corray333/orderflow/internal/dal/repositories/product/postgres"
)

// UnitOfWork binds the order, product and outbox repositories to one
// connection, and after Begin to one transaction.
type UnitOfWork struct {
	pool        *pgxpool.Pool
	tx          pgx.Tx
	orderRepo   iorderrepo.IOrderRepository
	productRepo iproductrepo.IProductRepository
	outboxRepo  ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work over the client's pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	pool := client.Pool()

	return &UnitOfWork{
		pool:        pool,
		orderRepo:   orderrepo.NewPostgresOrderRepository(pool),
		productRepo: productrepo.NewPostgresProductRepository(pool),
		outboxRepo:  outboxrepo.NewOutboxRepository(pool),
	}
}

// OrderRepository returns the orders-table repository.
func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

// ProductRepository returns the order_products repository.
func (u *UnitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

// OutboxRepository returns the outbox repository.
func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

// Begin starts a transaction and rebinds all repositories to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.productRepo = productrepo.NewPostgresProductRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)

	return nil
}

// Commit commits the transaction, if one was started.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback rolls the transaction back. Safe to defer after Commit; a
// rollback of a finished transaction is a no-op error that is discarded.
func (u *UnitOfWork) Rollback(ctx context.Context) {
	if u.tx == nil {
		return
	}

	_ = u.tx.Rollback(ctx)
}
