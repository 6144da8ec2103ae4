package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/corray333/orderflow/internal/service/models/product"
)

// ProductDal represents the order_products-table data access layer model.
type ProductDal struct {
	Id            string  `db:"id"`
	OrderId       string  `db:"order_id"`
	Name          string  `db:"name"`
	Category      string  `db:"category"`
	Brand         string  `db:"brand"`
	Compatibility string  `db:"compatibility"`
	Quantity      int     `db:"quantity"`
	Price         float64 `db:"price"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() *product.Product {
	return &product.Product{
		ID:            p.Id,
		Name:          p.Name,
		Category:      p.Category,
		Brand:         p.Brand,
		Compatibility: p.Compatibility,
		Price:         p.Price,
		Quantity:      p.Quantity,
	}
}

// ProductDalFromModel converts the service layer Product model to ProductDal.
func ProductDalFromModel(orderID string, p *product.Product) *ProductDal {
	return &ProductDal{
		Id:            p.ID,
		OrderId:       orderID,
		Name:          p.Name,
		Category:      p.Category,
		Brand:         p.Brand,
		Compatibility: p.Compatibility,
		Quantity:      p.Quantity,
		Price:         p.Price,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresProductRepository represents a Postgres order_products repository.
type PostgresProductRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres order_products repository.
func NewPostgresProductRepository(conn GenericConn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts all products of one order in a single statement.
func (r *PostgresProductRepository) BulkInsert(
	ctx context.Context,
	orderID string,
	products []product.Product,
) error {
	if len(products) == 0 {
		return nil
	}

	builder := r.sb.Insert("order_products").
		Columns("id", "order_id", "name", "category", "brand", "compatibility", "quantity", "price")

	for i := range products {
		dal := ProductDalFromModel(orderID, &products[i])
		builder = builder.Values(
			dal.Id,
			dal.OrderId,
			dal.Name,
			dal.Category,
			dal.Brand,
			dal.Compatibility,
			dal.Quantity,
			dal.Price,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to bulk insert products: %w", err)
	}

	return nil
}

// Query retrieves all product rows grouped by their parent order id.
func (r *PostgresProductRepository) Query(
	ctx context.Context,
) (map[string][]product.Product, error) {
	query, args, err := r.sb.Select(
		"id", "order_id", "name", "category", "brand", "compatibility", "quantity", "price",
	).
		From("order_products").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]product.Product)
	for rows.Next() {
		var dal ProductDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.Name,
			&dal.Category,
			&dal.Brand,
			&dal.Compatibility,
			&dal.Quantity,
			&dal.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result[dal.OrderId] = append(result[dal.OrderId], *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// DeleteByOrder removes every product belonging to the order.
func (r *PostgresProductRepository) DeleteByOrder(ctx context.Context, orderID string) error {
	query, args, err := r.sb.Delete("order_products").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}

	return nil
}
