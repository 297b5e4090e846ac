package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// StockRepo keeps stock records in a map guarded by a RWMutex.
type StockRepo struct {
	mu    sync.RWMutex
	store map[int64]domain.StockRecord
}

func NewStockRepo() *StockRepo {
	return &StockRepo{store: make(map[int64]domain.StockRecord)}
}

func (r *StockRepo) Get(ctx context.Context, productID int64) (domain.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.store[productID]
	if !ok {
		return domain.StockRecord{}, domain.ErrNotFound
	}
	return rec, nil
}

func (r *StockRepo) Put(ctx context.Context, rec domain.StockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[rec.ProductID]; !ok {
		return domain.ErrNotFound
	}
	r.store[rec.ProductID] = rec
	return nil
}

func (r *StockRepo) Create(ctx context.Context, rec domain.StockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[rec.ProductID]; ok {
		return domain.ErrStockExists
	}
	r.store[rec.ProductID] = rec
	return nil
}

func (r *StockRepo) All(ctx context.Context) ([]domain.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.StockRecord, 0, len(r.store))
	for _, rec := range r.store {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

var _ domain.StockRepository = (*StockRepo)(nil)
