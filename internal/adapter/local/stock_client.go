package local

import (
	"context"

	"github.com/example/order-fulfillment-service/internal/domain"
	"github.com/example/order-fulfillment-service/internal/stockledger"
)

// StockClient satisfies the orchestrator's stock port with an
// in-process ledger. Used in single-binary mode and tests; the remote
// deployment swaps in the HTTP client without touching the use cases.
type StockClient struct {
	Ledger *stockledger.Ledger
}

func (c StockClient) GetStock(ctx context.Context, productID int64) (domain.StockRecord, error) {
	return c.Ledger.GetStock(ctx, productID)
}

func (c StockClient) UpdateStock(ctx context.Context, productID int64, amount int, op domain.StockOperation) (domain.StockRecord, error) {
	return c.Ledger.ApplyDelta(ctx, productID, amount, op)
}

var _ domain.StockClient = StockClient{}
