package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/adapter/local"
	"github.com/example/order-fulfillment-service/internal/adapter/memory"
	"github.com/example/order-fulfillment-service/internal/domain"
	"github.com/example/order-fulfillment-service/internal/stockledger"
)

// fixture wires the fulfillment core against in-memory adapters, the
// way cmd/server does in single-binary mode.
type fixture struct {
	orders     *memory.OrderRepo
	stocks     *memory.StockRepo
	catalog    *memory.ProductCatalog
	ledger     *stockledger.Ledger
	dispatcher *stockledger.Dispatcher
	stock      domain.StockClient
	pricing    PricingResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		orders:  memory.NewOrderRepo(),
		stocks:  memory.NewStockRepo(),
		catalog: memory.NewProductCatalog(),
	}
	f.dispatcher = stockledger.NewDispatcher(f.catalog, zap.NewNop())
	f.ledger = stockledger.New(f.stocks, f.dispatcher, zap.NewNop())
	f.stock = local.StockClient{Ledger: f.ledger}
	f.pricing = PricingResolver{Products: f.catalog}
	t.Cleanup(f.dispatcher.Close)
	return f
}

func (f *fixture) addProduct(t *testing.T, p domain.Product, quantity, reorderLevel int) {
	t.Helper()
	if p.Status == "" {
		p.Status = domain.ProductActive
	}
	f.catalog.Add(p)
	require.NoError(t, f.stocks.Create(context.Background(),
		domain.StockRecord{ProductID: p.ProductID, Quantity: quantity, ReorderLevel: reorderLevel}))
}

func (f *fixture) createOrder() CreateOrder {
	return CreateOrder{Repo: f.orders, Stock: f.stock, Pricing: f.pricing, Log: zap.NewNop()}
}

func (f *fixture) updateStatus() UpdateOrderStatus {
	return UpdateOrderStatus{Repo: f.orders, Stock: f.stock, Log: zap.NewNop()}
}

// failingStockClient fails UpdateStock for one product/operation pair
// and delegates everything else.
type failingStockClient struct {
	inner     domain.StockClient
	productID int64
	op        domain.StockOperation
}

var errRemoteDown = errors.New("connection refused")

func (c failingStockClient) GetStock(ctx context.Context, productID int64) (domain.StockRecord, error) {
	return c.inner.GetStock(ctx, productID)
}

func (c failingStockClient) UpdateStock(ctx context.Context, productID int64, amount int, op domain.StockOperation) (domain.StockRecord, error) {
	if productID == c.productID && op == c.op {
		return domain.StockRecord{}, &domain.DownstreamError{Service: "stock", Err: errRemoteDown}
	}
	return c.inner.UpdateStock(ctx, productID, amount, op)
}
