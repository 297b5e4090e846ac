package stockledger

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// DefaultReorderLevel is applied when a stock record is created without
// an explicit threshold.
const DefaultReorderLevel = 10

// Ledger owns per-product stock quantities. Mutations for one product
// are serialized through a per-product lock; unrelated products proceed
// concurrently. Availability changes are handed to the notifier and
// never observed by the mutating caller.
type Ledger struct {
	repo     domain.StockRepository
	notifier domain.AvailabilityNotifier
	log      *zap.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(repo domain.StockRepository, notifier domain.AvailabilityNotifier, log *zap.Logger) *Ledger {
	return &Ledger{
		repo:     repo,
		notifier: notifier,
		log:      log,
		locks:    make(map[int64]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing mutations of one product.
// Locks are kept for the life of the process; the map is bounded by the
// number of distinct products seen.
func (l *Ledger) lockFor(productID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	pl, ok := l.locks[productID]
	if !ok {
		pl = &sync.Mutex{}
		l.locks[productID] = pl
	}
	return pl
}

// GetStock returns the record for one product.
func (l *Ledger) GetStock(ctx context.Context, productID int64) (domain.StockRecord, error) {
	return l.repo.Get(ctx, productID)
}

// ApplyDelta applies an increment or decrement to one product's
// quantity. Decrements that would drive quantity negative fail with
// InsufficientStockError; increments are unbounded. The check and the
// write run under the product's lock, so concurrent decrements cannot
// both pass the check.
func (l *Ledger) ApplyDelta(ctx context.Context, productID int64, amount int, op domain.StockOperation) (domain.StockRecord, error) {
	if amount <= 0 {
		return domain.StockRecord{}, domain.ErrValidation
	}

	pl := l.lockFor(productID)
	pl.Lock()
	defer pl.Unlock()

	rec, err := l.repo.Get(ctx, productID)
	if err != nil {
		return domain.StockRecord{}, err
	}
	previous := rec.Quantity

	switch op {
	case domain.OpIncrement:
		rec.Quantity += amount
	case domain.OpDecrement:
		if rec.Quantity-amount < 0 {
			return domain.StockRecord{}, &domain.InsufficientStockError{
				ProductID: productID,
				Available: rec.Quantity,
				Requested: amount,
			}
		}
		rec.Quantity -= amount
	default:
		return domain.StockRecord{}, domain.ErrValidation
	}

	if err := l.repo.Put(ctx, rec); err != nil {
		return domain.StockRecord{}, err
	}

	// Fire-and-forget: the notifier's outcome is invisible here.
	l.notifier.Notify(domain.AvailabilityChange{
		EventID:     uuid.NewString(),
		ProductID:   productID,
		PreviousQty: previous,
		NewQty:      rec.Quantity,
	})

	l.log.Debug("stock updated",
		zap.Int64("product_id", productID),
		zap.String("operation", string(op)),
		zap.Int("previous", previous),
		zap.Int("quantity", rec.Quantity))
	return rec, nil
}

// CreateStock registers the record for a newly created product. The
// product workflow calls this once per product.
func (l *Ledger) CreateStock(ctx context.Context, rec domain.StockRecord) (domain.StockRecord, error) {
	if rec.Quantity < 0 || rec.ReorderLevel < 0 {
		return domain.StockRecord{}, domain.ErrValidation
	}
	if rec.ReorderLevel == 0 {
		rec.ReorderLevel = DefaultReorderLevel
	}
	if err := l.repo.Create(ctx, rec); err != nil {
		return domain.StockRecord{}, err
	}
	return rec, nil
}

// ListLowStock returns every record whose quantity is below its reorder
// threshold. The condition is computed here, never stored.
func (l *Ledger) ListLowStock(ctx context.Context) ([]domain.StockRecord, error) {
	all, err := l.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]domain.StockRecord, 0, len(all))
	for _, rec := range all {
		if rec.Low() {
			low = append(low, rec)
		}
	}
	return low, nil
}

// SetReorderLevel updates the threshold for one product.
func (l *Ledger) SetReorderLevel(ctx context.Context, productID int64, level int) (domain.StockRecord, error) {
	if level < 0 {
		return domain.StockRecord{}, domain.ErrValidation
	}

	pl := l.lockFor(productID)
	pl.Lock()
	defer pl.Unlock()

	rec, err := l.repo.Get(ctx, productID)
	if err != nil {
		return domain.StockRecord{}, err
	}
	rec.ReorderLevel = level
	if err := l.repo.Put(ctx, rec); err != nil {
		return domain.StockRecord{}, err
	}
	return rec, nil
}
