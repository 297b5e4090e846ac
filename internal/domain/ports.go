package domain

import "context"

// OrderRepository is the persistence port for orders. Save assigns the
// id and returns the stored order; orders are never physically deleted.
type OrderRepository interface {
	Save(ctx context.Context, o Order) (Order, error)
	FindByID(ctx context.Context, id int64) (Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	FindByCustomerID(ctx context.Context, customerID int64) ([]Order, error)
	FindByProductID(ctx context.Context, productID int64) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, status OrderStatus) error
}

// StockRepository is the persistence port behind the stock ledger.
// Serialization of concurrent mutations is the ledger's job, not the
// repository's.
type StockRepository interface {
	Get(ctx context.Context, productID int64) (StockRecord, error)
	Put(ctx context.Context, rec StockRecord) error
	Create(ctx context.Context, rec StockRecord) error
	All(ctx context.Context) ([]StockRecord, error)
}

// StockClient is the orchestrator's view of the stock service. Every
// call is a blocking remote call and must honour ctx deadlines.
type StockClient interface {
	GetStock(ctx context.Context, productID int64) (StockRecord, error)
	UpdateStock(ctx context.Context, productID int64, amount int, op StockOperation) (StockRecord, error)
}

// ProductClient is the remote product service: price/status reads for
// pricing, and the one-way status patch used by the availability path.
type ProductClient interface {
	GetProduct(ctx context.Context, productID int64) (Product, error)
	UpdateProductStatus(ctx context.Context, productID int64, status ProductStatus) error
}

// AvailabilityNotifier receives completed stock changes off the
// mutating caller's path. Implementations must not block the caller and
// must swallow (but log) their own failures.
type AvailabilityNotifier interface {
	Notify(change AvailabilityChange)
}
