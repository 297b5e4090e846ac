package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// StockClient talks to a remote stock service.
type StockClient struct {
	c caller
}

func NewStockClient(baseURL string, timeout time.Duration) *StockClient {
	return &StockClient{c: newCaller(baseURL, timeout)}
}

func (s *StockClient) GetStock(ctx context.Context, productID int64) (domain.StockRecord, error) {
	var rec domain.StockRecord
	status, eb, err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/api/stocks/%d", productID), nil, &rec)
	if err != nil {
		return domain.StockRecord{}, &domain.DownstreamError{Service: "stock", Err: err}
	}
	if status >= 300 {
		return domain.StockRecord{}, mapStockError(status, eb, productID)
	}
	return rec, nil
}

type stockUpdateRequest struct {
	Quantity  int                   `json:"quantity"`
	Operation domain.StockOperation `json:"operation"`
}

func (s *StockClient) UpdateStock(ctx context.Context, productID int64, amount int, op domain.StockOperation) (domain.StockRecord, error) {
	var rec domain.StockRecord
	body := stockUpdateRequest{Quantity: amount, Operation: op}
	status, eb, err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/stocks/%d", productID), body, &rec)
	if err != nil {
		return domain.StockRecord{}, &domain.DownstreamError{Service: "stock", Err: err}
	}
	if status >= 300 {
		return domain.StockRecord{}, mapStockError(status, eb, productID)
	}
	return rec, nil
}

func mapStockError(status int, eb errorBody, productID int64) error {
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("stock for product %d: %w", productID, domain.ErrNotFound)
	case http.StatusBadRequest:
		if eb.Available != nil && eb.Requested != nil {
			return &domain.InsufficientStockError{
				ProductID: productID,
				Available: *eb.Available,
				Requested: *eb.Requested,
			}
		}
		return fmt.Errorf("stock update rejected: %s: %w", eb.Message, domain.ErrValidation)
	default:
		return &domain.DownstreamError{Service: "stock", Err: fmt.Errorf("%s", eb.Message)}
	}
}

var _ domain.StockClient = (*StockClient)(nil)
