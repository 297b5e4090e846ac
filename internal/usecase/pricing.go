package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// OrderItemView is a line item rendered with its current unit price.
type OrderItemView struct {
	ProductID  int64           `json:"productId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// OrderView is an order rendered for reading: prices resolved fresh,
// total computed, nothing cached back onto the order.
type OrderView struct {
	ID         int64              `json:"id"`
	CustomerID int64              `json:"customerId"`
	OrderDate  time.Time          `json:"orderDate"`
	Status     domain.OrderStatus `json:"orderStatus"`
	Items      []OrderItemView    `json:"items"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
}

// PricingResolver looks up current unit prices and renders orders.
// Totals are recomputed on every read, so a price change after order
// creation changes the total reported on the next read.
type PricingResolver struct {
	Products domain.ProductClient
}

// PriceFor returns the current unit price of one product. A product
// that no longer resolves (deleted, unknown) fails with
// ProductNotFoundError.
func (r PricingResolver) PriceFor(ctx context.Context, productID int64) (decimal.Decimal, error) {
	p, err := r.Products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return decimal.Decimal{}, &domain.ProductNotFoundError{ProductID: productID}
		}
		return decimal.Decimal{}, err
	}
	return p.Price, nil
}

// Render prices every line of the order and sums the total. A line
// whose product no longer resolves fails the whole render rather than
// being skipped, so callers never see a partial total.
func (r PricingResolver) Render(ctx context.Context, o domain.Order) (OrderView, error) {
	view := OrderView{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		OrderDate:  o.OrderDate,
		Status:     o.Status,
		Items:      make([]OrderItemView, 0, len(o.Items)),
	}
	total := decimal.Zero
	for _, it := range o.Items {
		unit, err := r.PriceFor(ctx, it.ProductID)
		if err != nil {
			return OrderView{}, err
		}
		lineTotal := unit.Mul(decimal.NewFromInt(int64(it.Quantity)))
		view.Items = append(view.Items, OrderItemView{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  unit,
			TotalPrice: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	view.TotalPrice = total
	return view, nil
}
