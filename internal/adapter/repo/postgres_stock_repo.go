package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/order-fulfillment-service/internal/domain"
)

type PostgresStockRepo struct {
	Pool *pgxpool.Pool
}

func NewPostgresStockRepo(pool *pgxpool.Pool) *PostgresStockRepo {
	return &PostgresStockRepo{Pool: pool}
}

func (r *PostgresStockRepo) Get(ctx context.Context, productID int64) (domain.StockRecord, error) {
	var rec domain.StockRecord
	err := r.Pool.QueryRow(ctx,
		`SELECT product_id, quantity, reorder_level FROM stocks WHERE product_id=$1`, productID).
		Scan(&rec.ProductID, &rec.Quantity, &rec.ReorderLevel)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StockRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.StockRecord{}, err
	}
	return rec, nil
}

func (r *PostgresStockRepo) Put(ctx context.Context, rec domain.StockRecord) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE stocks SET quantity=$2, reorder_level=$3 WHERE product_id=$1`,
		rec.ProductID, rec.Quantity, rec.ReorderLevel)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresStockRepo) Create(ctx context.Context, rec domain.StockRecord) error {
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO stocks(product_id, quantity, reorder_level) VALUES($1, $2, $3)`,
		rec.ProductID, rec.Quantity, rec.ReorderLevel)
	if isUniqueViolation(err) {
		return domain.ErrStockExists
	}
	return err
}

func (r *PostgresStockRepo) All(ctx context.Context) ([]domain.StockRecord, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT product_id, quantity, reorder_level FROM stocks ORDER BY product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StockRecord
	for rows.Next() {
		var rec domain.StockRecord
		if err := rows.Scan(&rec.ProductID, &rec.Quantity, &rec.ReorderLevel); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ domain.StockRepository = (*PostgresStockRepo)(nil)

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS orders (
  id bigserial PRIMARY KEY,
  customer_id bigint NOT NULL,
  order_date timestamptz NOT NULL,
  status text NOT NULL
);
CREATE TABLE IF NOT EXISTS order_items (
  id bigserial PRIMARY KEY,
  order_id bigint NOT NULL REFERENCES orders(id),
  product_id bigint NOT NULL,
  quantity int NOT NULL CHECK (quantity > 0)
);
CREATE TABLE IF NOT EXISTS stocks (
  product_id bigint PRIMARY KEY,
  quantity int NOT NULL CHECK (quantity >= 0),
  reorder_level int NOT NULL CHECK (reorder_level >= 0)
);`)
	return err
}
