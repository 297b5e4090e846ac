package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/domain"
)

func placeOrder(t *testing.T, f *fixture, items ...domain.OrderItem) int64 {
	t.Helper()
	view, err := f.createOrder().Execute(context.Background(), 100, items)
	require.NoError(t, err)
	return view.ID
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		through []domain.OrderStatus
		next    domain.OrderStatus
		wantErr bool
	}{
		{"pending to shipped", nil, domain.StatusShipped, false},
		{"pending straight to delivered", nil, domain.StatusDelivered, false},
		{"shipped to delivered", []domain.OrderStatus{domain.StatusShipped}, domain.StatusDelivered, false},
		{"delivered is terminal", []domain.OrderStatus{domain.StatusDelivered}, domain.StatusShipped, true},
		{"cancel a delivered order", []domain.OrderStatus{domain.StatusDelivered}, domain.StatusCancelled, true},
		{"cancelled is immutable", []domain.OrderStatus{domain.StatusCancelled}, domain.StatusShipped, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addProduct(t, domain.Product{ProductID: 1, Name: "widget", Price: decimal.NewFromInt(2)}, 50, 0)
			orderID := placeOrder(t, f, domain.OrderItem{ProductID: 1, Quantity: 1})

			uc := f.updateStatus()
			for _, st := range tt.through {
				require.NoError(t, uc.Execute(context.Background(), orderID, st))
			}

			err := uc.Execute(context.Background(), orderID, tt.next)
			if tt.wantErr {
				var transition *domain.InvalidTransitionError
				assert.ErrorAs(t, err, &transition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateStatusSelfTransitionIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, domain.Product{ProductID: 1, Name: "widget", Price: decimal.NewFromInt(2)}, 50, 0)
	orderID := placeOrder(t, f, domain.OrderItem{ProductID: 1, Quantity: 5})
	uc := f.updateStatus()

	require.NoError(t, uc.Execute(context.Background(), orderID, domain.StatusPending))
	require.NoError(t, uc.Execute(context.Background(), orderID, domain.StatusShipped))
	require.NoError(t, uc.Execute(context.Background(), orderID, domain.StatusShipped))

	// A self-transition must not re-run compensation either.
	require.NoError(t, uc.Execute(context.Background(), orderID, domain.StatusCancelled))
	rec, err := f.ledger.GetStock(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 50, rec.Quantity)

	require.NoError(t, uc.Execute(context.Background(), orderID, domain.StatusCancelled))
	rec, err = f.ledger.GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 50, rec.Quantity)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	f := newFixture(t)
	err := f.updateStatus().Execute(context.Background(), 404, domain.StatusShipped)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelRestoresStockPerLine(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, domain.Product{ProductID: 1, Name: "widget", Price: decimal.NewFromInt(2)}, 10, 0)
	f.addProduct(t, domain.Product{ProductID: 2, Name: "gadget", Price: decimal.NewFromInt(3)}, 10, 0)
	orderID := placeOrder(t, f,
		domain.OrderItem{ProductID: 1, Quantity: 4},
		domain.OrderItem{ProductID: 2, Quantity: 6})

	require.NoError(t, f.updateStatus().Execute(context.Background(), orderID, domain.StatusCancelled))

	for _, productID := range []int64{1, 2} {
		rec, err := f.ledger.GetStock(context.Background(), productID)
		require.NoError(t, err)
		assert.Equal(t, 10, rec.Quantity)
	}
}

func TestCancelSurvivesPartialCompensationFailure(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, domain.Product{ProductID: 1, Name: "widget", Price: decimal.NewFromInt(2)}, 10, 0)
	f.addProduct(t, domain.Product{ProductID: 2, Name: "gadget", Price: decimal.NewFromInt(3)}, 10, 0)
	orderID := placeOrder(t, f,
		domain.OrderItem{ProductID: 1, Quantity: 4},
		domain.OrderItem{ProductID: 2, Quantity: 6})

	// Restoration for product 1 fails; the cancellation must stand and
	// product 2 must still be restored.
	uc := UpdateOrderStatus{
		Repo:  f.orders,
		Stock: failingStockClient{inner: f.stock, productID: 1, op: domain.OpIncrement},
		Log:   zap.NewNop(),
	}
	require.NoError(t, uc.Execute(context.Background(), orderID, domain.StatusCancelled))

	order, err := f.orders.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, order.Status)

	rec, err := f.ledger.GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 6, rec.Quantity) // not restored
	rec, err = f.ledger.GetStock(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.Quantity) // restored
}
