package usecase

import (
	"context"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// Read paths are pure projections: load orders, resolve prices fresh,
// never touch stock or status.

type ListOrders struct {
	Repo    domain.OrderRepository
	Pricing PricingResolver
}

func (uc ListOrders) Execute(ctx context.Context) ([]OrderView, error) {
	orders, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return renderAll(ctx, uc.Pricing, orders)
}

type OrdersByCustomer struct {
	Repo    domain.OrderRepository
	Pricing PricingResolver
}

func (uc OrdersByCustomer) Execute(ctx context.Context, customerID int64) ([]OrderView, error) {
	orders, err := uc.Repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return renderAll(ctx, uc.Pricing, orders)
}

type OrdersByProduct struct {
	Repo    domain.OrderRepository
	Pricing PricingResolver
}

func (uc OrdersByProduct) Execute(ctx context.Context, productID int64) ([]OrderView, error) {
	orders, err := uc.Repo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return renderAll(ctx, uc.Pricing, orders)
}

type GetOrder struct {
	Repo    domain.OrderRepository
	Pricing PricingResolver
}

func (uc GetOrder) Execute(ctx context.Context, orderID int64) (OrderView, error) {
	order, err := uc.Repo.FindByID(ctx, orderID)
	if err != nil {
		return OrderView{}, err
	}
	return uc.Pricing.Render(ctx, order)
}

func renderAll(ctx context.Context, pricing PricingResolver, orders []domain.Order) ([]OrderView, error) {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		view, err := pricing.Render(ctx, o)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
