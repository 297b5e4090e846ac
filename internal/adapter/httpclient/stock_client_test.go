package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/order-fulfillment-service/internal/domain"
)

func TestStockClientGetStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stocks/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.StockRecord{ProductID: 7, Quantity: 3, ReorderLevel: 5})
	}))
	defer srv.Close()

	c := NewStockClient(srv.URL, time.Second)
	rec, err := c.GetStock(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Quantity)
}

func TestStockClientMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": 404, "message": "not found"})
	}))
	defer srv.Close()

	c := NewStockClient(srv.URL, time.Second)
	_, err := c.GetStock(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockClientMapsInsufficientStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": 400, "message": "insufficient stock",
			"productId": 7, "available": 2, "requested": 5,
		})
	}))
	defer srv.Close()

	c := NewStockClient(srv.URL, time.Second)
	_, err := c.UpdateStock(context.Background(), 7, 5, domain.OpDecrement)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)
}

func TestStockClientMapsServerErrorToDownstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewStockClient(srv.URL, time.Second)
	_, err := c.GetStock(context.Background(), 7)
	var downstream *domain.DownstreamError
	assert.ErrorAs(t, err, &downstream)
}

func TestStockClientUnreachable(t *testing.T) {
	c := NewStockClient("http://127.0.0.1:1", 100*time.Millisecond)
	_, err := c.GetStock(context.Background(), 7)
	var downstream *domain.DownstreamError
	assert.ErrorAs(t, err, &downstream)
}

func TestProductClientGetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"productId":3,"name":"widget","price":"9.50","category":"tools","status":"ACTIVE"}`))
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL, time.Second)
	p, err := c.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "widget", p.Name)
	assert.Equal(t, "9.5", p.Price.String())
}

func TestProductClientStatusPatch(t *testing.T) {
	var gotBody productStatusRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/products/3/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL, time.Second)
	require.NoError(t, c.UpdateProductStatus(context.Background(), 3, domain.ProductOutOfStock))
	assert.Equal(t, domain.ProductOutOfStock, gotBody.Status)
}

func TestProductClientMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL, time.Second)
	_, err := c.GetProduct(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
