package domain

// StockOperation is the direction of a stock mutation.
type StockOperation string

const (
	OpIncrement StockOperation = "INCREMENT"
	OpDecrement StockOperation = "DECREMENT"
)

// ParseStockOperation validates a wire-level operation value.
func ParseStockOperation(s string) (StockOperation, error) {
	switch StockOperation(s) {
	case OpIncrement, OpDecrement:
		return StockOperation(s), nil
	}
	return "", ErrValidation
}

// StockRecord tracks the on-hand quantity for one product. Quantity is
// never negative. LowStock is derived on read, never stored.
type StockRecord struct {
	ProductID    int64 `json:"productId"`
	Quantity     int   `json:"quantity"`
	ReorderLevel int   `json:"reorderLevel"`
}

// Low reports whether quantity has fallen below the reorder threshold.
func (s StockRecord) Low() bool {
	return s.Quantity < s.ReorderLevel
}

// AvailabilityChange describes a completed stock mutation, carried to
// the availability notifier off the mutating caller's path.
type AvailabilityChange struct {
	EventID     string `json:"eventId"`
	ProductID   int64  `json:"productId"`
	PreviousQty int    `json:"previousQty"`
	NewQty      int    `json:"newQty"`
}

// StatusAfterChange returns the product status implied by a quantity
// change: OUT_OF_STOCK when stock hits zero, ACTIVE when it recovers
// from zero. The second return is false when no flip is needed.
// DISCONTINUED and DELETED products are the product service's concern;
// this function has no visibility into current status.
func StatusAfterChange(previousQty, newQty int) (ProductStatus, bool) {
	switch {
	case previousQty > 0 && newQty == 0:
		return ProductOutOfStock, true
	case previousQty == 0 && newQty > 0:
		return ProductActive, true
	}
	return "", false
}
