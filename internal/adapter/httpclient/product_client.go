package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// ProductClient talks to a remote product service.
type ProductClient struct {
	c caller
}

func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{c: newCaller(baseURL, timeout)}
}

func (p *ProductClient) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	var prod domain.Product
	status, eb, err := p.c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil, &prod)
	if err != nil {
		return domain.Product{}, &domain.DownstreamError{Service: "product", Err: err}
	}
	switch {
	case status == http.StatusNotFound:
		return domain.Product{}, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	case status >= 300:
		return domain.Product{}, &domain.DownstreamError{Service: "product", Err: fmt.Errorf("%s", eb.Message)}
	}
	return prod, nil
}

type productStatusRequest struct {
	Status domain.ProductStatus `json:"status"`
}

func (p *ProductClient) UpdateProductStatus(ctx context.Context, productID int64, st domain.ProductStatus) error {
	body := productStatusRequest{Status: st}
	status, eb, err := p.c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/products/%d/status", productID), body, nil)
	if err != nil {
		return &domain.DownstreamError{Service: "product", Err: err}
	}
	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	case status >= 300:
		return &domain.DownstreamError{Service: "product", Err: fmt.Errorf("%s", eb.Message)}
	}
	return nil
}

var _ domain.ProductClient = (*ProductClient)(nil)
