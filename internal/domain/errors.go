package domain

import "fmt"

// Common sentinel errors.
var (
	ErrNotFound    = notFoundError("not found")
	ErrValidation  = validationError("invalid data")
	ErrStockExists = validationError("stock record already exists")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }

// InvalidOrderError rejects malformed order input at the boundary.
type InvalidOrderError struct {
	Reason string
}

func (e *InvalidOrderError) Error() string {
	return "invalid order: " + e.Reason
}

// ProductNotFoundError means a referenced product does not exist or is
// unavailable. A remote not-found on the stock path is reported as this
// error, not as a stock error.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found with id: %d", e.ProductID)
}

// InsufficientStockError carries the figures the caller needs to act.
type InsufficientStockError struct {
	ProductID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

// InvalidTransitionError rejects an order-status edge outside the
// allowed set.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// DownstreamError wraps an infrastructure failure from a remote
// stock/product call. Never retried at this layer.
type DownstreamError struct {
	Service string
	Err     error
}

func (e *DownstreamError) Error() string {
	return fmt.Sprintf("%s service unavailable: %v", e.Service, e.Err)
}

func (e *DownstreamError) Unwrap() error { return e.Err }

// PartialApplicationError reports a stock decrement that failed after
// the order was already persisted. The order stays PENDING and earlier
// decrements stay applied; reconciliation is an operator concern.
type PartialApplicationError struct {
	OrderID   int64
	ProductID int64
	Err       error
}

func (e *PartialApplicationError) Error() string {
	return fmt.Sprintf("order %d persisted but stock decrement failed for product %d: %v",
		e.OrderID, e.ProductID, e.Err)
}

func (e *PartialApplicationError) Unwrap() error { return e.Err }
