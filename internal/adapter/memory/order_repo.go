package memory

import (
	"context"
	"sync"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// OrderRepo keeps orders in a map guarded by a RWMutex. Used in tests
// and in single-binary mode when no database is configured.
type OrderRepo struct {
	mu     sync.RWMutex
	store  map[int64]domain.Order
	nextID int64
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{store: make(map[int64]domain.Order), nextID: 1}
}

func (r *OrderRepo) Save(ctx context.Context, o domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	r.store[o.ID] = o
	return o, nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.store[id]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}

func (r *OrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(domain.Order) bool { return true }), nil
}

func (r *OrderRepo) FindByCustomerID(ctx context.Context, customerID int64) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o domain.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *OrderRepo) FindByProductID(ctx context.Context, productID int64) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o domain.Order) bool {
		for _, it := range o.Items {
			if it.ProductID == productID {
				return true
			}
		}
		return false
	}), nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.store[id] = o
	return nil
}

// collect assumes the caller holds at least a read lock. Results come
// back in id order so listings are stable.
func (r *OrderRepo) collect(match func(domain.Order) bool) []domain.Order {
	out := make([]domain.Order, 0, len(r.store))
	for id := int64(1); id < r.nextID; id++ {
		if o, ok := r.store[id]; ok && match(o) {
			out = append(out, o)
		}
	}
	return out
}

var _ domain.OrderRepository = (*OrderRepo)(nil)
