package stockledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/adapter/memory"
	"github.com/example/order-fulfillment-service/internal/domain"
)

func TestDispatcherFlipsStatus(t *testing.T) {
	catalog := memory.NewProductCatalog()
	catalog.Add(domain.Product{ProductID: 1, Name: "widget", Status: domain.ProductActive})

	d := NewDispatcher(catalog, zap.NewNop())
	d.Notify(domain.AvailabilityChange{EventID: "e1", ProductID: 1, PreviousQty: 3, NewQty: 0})
	d.Close() // drains the queue

	p, err := catalog.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductOutOfStock, p.Status)
}

func TestDispatcherRecoversStatus(t *testing.T) {
	catalog := memory.NewProductCatalog()
	catalog.Add(domain.Product{ProductID: 1, Name: "widget", Status: domain.ProductOutOfStock})

	d := NewDispatcher(catalog, zap.NewNop())
	d.Notify(domain.AvailabilityChange{EventID: "e1", ProductID: 1, PreviousQty: 0, NewQty: 4})
	d.Close()

	p, err := catalog.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductActive, p.Status)
}

func TestDispatcherIgnoresNonEdgeChanges(t *testing.T) {
	catalog := memory.NewProductCatalog()
	catalog.Add(domain.Product{ProductID: 1, Name: "widget", Status: domain.ProductActive})

	d := NewDispatcher(catalog, zap.NewNop())
	d.Notify(domain.AvailabilityChange{EventID: "e1", ProductID: 1, PreviousQty: 5, NewQty: 3})
	d.Close()

	p, err := catalog.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductActive, p.Status)
}

func TestDispatcherFailureDoesNotPanic(t *testing.T) {
	// The product does not exist; the patch fails, is logged and dropped.
	catalog := memory.NewProductCatalog()
	d := NewDispatcher(catalog, zap.NewNop())
	d.Notify(domain.AvailabilityChange{EventID: "e1", ProductID: 9, PreviousQty: 1, NewQty: 0})
	d.Close()
}
