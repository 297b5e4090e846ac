package memory

import (
	"context"
	"sync"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// ProductCatalog is an in-process stand-in for the remote product
// service: price/status reads and the status patch driven by the
// availability path. Soft-deleted products do not resolve, matching the
// remote contract.
type ProductCatalog struct {
	mu    sync.RWMutex
	store map[int64]domain.Product
}

func NewProductCatalog() *ProductCatalog {
	return &ProductCatalog{store: make(map[int64]domain.Product)}
}

// Add registers a product, for seeding.
func (c *ProductCatalog) Add(p domain.Product) {
	c.mu.Lock()
	c.store[p.ProductID] = p
	c.mu.Unlock()
}

func (c *ProductCatalog) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.store[productID]
	if !ok || p.Status == domain.ProductDeleted {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

// UpdateProductStatus applies the ACTIVE/OUT_OF_STOCK flip. The product
// side owns the guard: DISCONTINUED and DELETED products ignore the
// transition.
func (c *ProductCatalog) UpdateProductStatus(ctx context.Context, productID int64, status domain.ProductStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.store[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Status == domain.ProductDiscontinued || p.Status == domain.ProductDeleted {
		return nil
	}
	p.Status = status
	c.store[productID] = p
	return nil
}

var _ domain.ProductClient = (*ProductCatalog)(nil)
