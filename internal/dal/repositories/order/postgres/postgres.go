package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/corray333/orderflow/internal/service/models/order"
	"github.com/corray333/orderflow/internal/service/models/product"
)

const dateLayout = "2006-01-02"

// OrderDal represents the orders-table data access layer model.
type OrderDal struct {
	Id          string    `db:"id"`
	Date        time.Time `db:"date"`
	Supplier    string    `db:"supplier"`
	TotalAmount float64   `db:"total_amount"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:          o.Id,
		Date:        o.Date.Format(dateLayout),
		Supplier:    o.Supplier,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Products:    []product.Product{}, // populated separately
	}
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) (*OrderDal, error) {
	date, err := time.Parse(dateLayout, o.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order date %q: %w", o.Date, err)
	}

	return &OrderDal{
		Id:          o.ID,
		Date:        date,
		Supplier:    o.Supplier,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}, nil
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderRepository represents a Postgres orders-table repository.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres orders-table repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts a single order row without its products.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) error {
	dal, err := OrderDalFromModel(&o)
	if err != nil {
		return err
	}

	query, args, err := r.sb.Insert("orders").
		Columns("id", "date", "supplier", "total_amount", "created_at", "updated_at").
		Values(dal.Id, dal.Date, dal.Supplier, dal.TotalAmount, dal.CreatedAt, dal.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// Query retrieves all order rows, newest first.
func (r *PostgresOrderRepository) Query(ctx context.Context) ([]order.Order, error) {
	query, args, err := r.sb.Select("id", "date", "supplier", "total_amount", "created_at", "updated_at").
		From("orders").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.Date,
			&dal.Supplier,
			&dal.TotalAmount,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update replaces the order's scalar columns.
func (r *PostgresOrderRepository) Update(ctx context.Context, o order.Order) error {
	dal, err := OrderDalFromModel(&o)
	if err != nil {
		return err
	}

	query, args, err := r.sb.Update("orders").
		Set("date", dal.Date).
		Set("supplier", dal.Supplier).
		Set("total_amount", dal.TotalAmount).
		Set("updated_at", dal.UpdatedAt).
		Where(sq.Eq{"id": dal.Id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// Delete removes a single order row. Product rows must be removed first;
// the schema carries no cascade.
func (r *PostgresOrderRepository) Delete(ctx context.Context, orderID string) error {
	query, args, err := r.sb.Delete("orders").
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}
