package domain

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus validates a wire-level status value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", ErrValidation
}

// CanTransitionTo reports whether the edge from s to next is allowed.
// Self-transitions are allowed (callers treat them as no-ops); DELIVERED
// and CANCELLED have no outgoing edges. PENDING may skip SHIPPED and go
// straight to DELIVERED.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusShipped || next == StatusDelivered || next == StatusCancelled
	case StatusShipped:
		return next == StatusDelivered || next == StatusCancelled
	default:
		return false
	}
}

// OrderItem is one line of an order. Quantity is immutable once the
// order exists; corrections happen through cancellation, not edits.
type OrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Order is the persisted order record. The total is never stored on it;
// read paths derive it from current unit prices.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customerId"`
	OrderDate  time.Time   `json:"orderDate"`
	Status     OrderStatus `json:"orderStatus"`
	Items      []OrderItem `json:"items"`
}

// AggregateQuantities sums quantities across line items referencing the
// same product, so sufficiency checks see combined demand rather than
// per-line quantities.
func AggregateQuantities(items []OrderItem) map[int64]int {
	totals := make(map[int64]int, len(items))
	for _, it := range items {
		totals[it.ProductID] += it.Quantity
	}
	return totals
}
