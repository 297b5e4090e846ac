package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// UpdateOrderStatus applies an order lifecycle transition. A transition
// to CANCELLED triggers compensation: one stock INCREMENT per line
// item, each attempted independently. The status write and the
// compensating calls are not atomic with each other; the order stays
// CANCELLED even when compensation partially fails.
type UpdateOrderStatus struct {
	Repo  domain.OrderRepository
	Stock domain.StockClient
	Log   *zap.Logger
}

func (uc UpdateOrderStatus) Execute(ctx context.Context, orderID int64, next domain.OrderStatus) error {
	order, err := uc.Repo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	current := order.Status

	// Self-transition is a no-op success.
	if current == next {
		return nil
	}
	if current == domain.StatusCancelled || !current.CanTransitionTo(next) {
		return &domain.InvalidTransitionError{From: current, To: next}
	}

	if err := uc.Repo.UpdateStatus(ctx, orderID, next); err != nil {
		return err
	}
	uc.Log.Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", string(current)),
		zap.String("to", string(next)))

	if next == domain.StatusCancelled {
		uc.restoreStock(ctx, order)
	}
	return nil
}

// restoreStock issues a compensating increment per line item. Failures
// are logged and do not abort the remaining items or the cancellation;
// unrestored quantities are an operator reconciliation concern.
func (uc UpdateOrderStatus) restoreStock(ctx context.Context, order domain.Order) {
	for _, it := range order.Items {
		if _, err := uc.Stock.UpdateStock(ctx, it.ProductID, it.Quantity, domain.OpIncrement); err != nil {
			uc.Log.Error("stock restoration failed",
				zap.Int64("order_id", order.ID),
				zap.Int64("product_id", it.ProductID),
				zap.Int("quantity", it.Quantity),
				zap.Error(err))
		}
	}
}
