package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/order-fulfillment-service/internal/domain"
)

type PostgresOrderRepo struct {
	Pool *pgxpool.Pool
}

func NewPostgresOrderRepo(pool *pgxpool.Pool) *PostgresOrderRepo {
	return &PostgresOrderRepo{Pool: pool}
}

// Save inserts the order and its line items in one transaction and
// returns the order with its assigned id.
func (r *PostgresOrderRepo) Save(ctx context.Context, o domain.Order) (domain.Order, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO orders(customer_id, order_date, status) VALUES($1, $2, $3) RETURNING id`,
		o.CustomerID, o.OrderDate, o.Status).Scan(&o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	for _, it := range o.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items(order_id, product_id, quantity) VALUES($1, $2, $3)`,
			o.ID, it.ProductID, it.Quantity)
		if err != nil {
			return domain.Order{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *PostgresOrderRepo) FindByID(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := r.Pool.QueryRow(ctx,
		`SELECT id, customer_id, order_date, status FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.CustomerID, &o.OrderDate, &o.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	if err := r.loadItems(ctx, []*domain.Order{&o}); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *PostgresOrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.findWhere(ctx, `SELECT id, customer_id, order_date, status FROM orders ORDER BY id`)
}

func (r *PostgresOrderRepo) FindByCustomerID(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return r.findWhere(ctx,
		`SELECT id, customer_id, order_date, status FROM orders WHERE customer_id=$1 ORDER BY id`,
		customerID)
}

// FindByProductID joins through order_items: every order with at least
// one line for the product.
func (r *PostgresOrderRepo) FindByProductID(ctx context.Context, productID int64) ([]domain.Order, error) {
	return r.findWhere(ctx,
		`SELECT DISTINCT o.id, o.customer_id, o.order_date, o.status
         FROM orders o JOIN order_items i ON i.order_id = o.id
         WHERE i.product_id=$1 ORDER BY o.id`,
		productID)
}

func (r *PostgresOrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresOrderRepo) findWhere(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &o.Status); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresOrderRepo) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT order_id, product_id, quantity FROM order_items WHERE order_id = ANY($1) ORDER BY id`,
		ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var it domain.OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.Quantity); err != nil {
			return err
		}
		o := byID[orderID]
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

var _ domain.OrderRepository = (*PostgresOrderRepo)(nil)
