package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// CreateOrder runs the fulfillment saga: validate, aggregate demand per
// product, verify stock for every distinct product, persist the order
// PENDING, then decrement stock per line item. There is no distributed
// transaction behind this; the failure windows are documented on the
// error types.
type CreateOrder struct {
	Repo    domain.OrderRepository
	Stock   domain.StockClient
	Pricing PricingResolver
	Log     *zap.Logger
}

func (uc CreateOrder) Execute(ctx context.Context, customerID int64, items []domain.OrderItem) (OrderView, error) {
	if len(items) == 0 {
		return OrderView{}, &domain.InvalidOrderError{Reason: "order must contain at least one item"}
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return OrderView{}, &domain.InvalidOrderError{Reason: "item quantity must be positive"}
		}
	}

	// Duplicate lines for one product are checked against their combined
	// total, not per line.
	totals := domain.AggregateQuantities(items)
	if err := uc.verifyStock(ctx, totals); err != nil {
		return OrderView{}, err
	}

	order := domain.Order{
		CustomerID: customerID,
		OrderDate:  time.Now().UTC(),
		Status:     domain.StatusPending,
		Items:      items,
	}
	saved, err := uc.Repo.Save(ctx, order)
	if err != nil {
		return OrderView{}, err
	}

	// Decrement per original line, in input order. A failure here leaves
	// the order PENDING and earlier decrements applied; no automatic
	// rollback.
	for _, it := range saved.Items {
		if _, err := uc.Stock.UpdateStock(ctx, it.ProductID, it.Quantity, domain.OpDecrement); err != nil {
			uc.Log.Error("stock decrement failed after order persisted",
				zap.Int64("order_id", saved.ID),
				zap.Int64("product_id", it.ProductID),
				zap.Int("quantity", it.Quantity),
				zap.Error(err))
			return OrderView{}, &domain.PartialApplicationError{
				OrderID:   saved.ID,
				ProductID: it.ProductID,
				Err:       err,
			}
		}
	}

	uc.Log.Info("order created",
		zap.Int64("order_id", saved.ID),
		zap.Int64("customer_id", customerID),
		zap.Int("items", len(saved.Items)))
	return uc.Pricing.Render(ctx, saved)
}

// verifyStock checks availability for every distinct product before any
// decrement is applied. A not-found from the stock service is reported
// as a product-existence failure, mirroring the service boundary: the
// stock path answering 404 means the product was never registered.
func (uc CreateOrder) verifyStock(ctx context.Context, totals map[int64]int) error {
	ids := make([]int64, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		requested := totals[id]
		rec, err := uc.Stock.GetStock(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return &domain.ProductNotFoundError{ProductID: id}
			}
			return err
		}
		if rec.Quantity < requested {
			return &domain.InsufficientStockError{
				ProductID: id,
				Available: rec.Quantity,
				Requested: requested,
			}
		}
	}
	return nil
}
